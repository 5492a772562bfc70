package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mlodash/backend/internal/domain/models"
	"github.com/mlodash/backend/pkg/constants"
)

// In-memory fakes over the repository ports. Error injection fields let tests
// force individual operations to fail.

type fakeClients struct {
	mu      sync.Mutex
	clients map[string]*models.Client
	findErr error
}

func (f *fakeClients) FindByID(_ context.Context, id string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	client, ok := f.clients[id]
	if !ok {
		return nil, nil
	}
	copied := *client
	copied.Tags = append([]string(nil), client.Tags...)
	return &copied, nil
}

func (f *fakeClients) FindAllIDs(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id := range f.clients {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeClients) UpdateStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[id].Status = status
	return nil
}

func (f *fakeClients) UpdateTags(_ context.Context, id string, tags []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[id].Tags = append([]string(nil), tags...)
	return nil
}

func (f *fakeClients) UpdateAssignee(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[id].AssignedToID = userID
	return nil
}

type fakeTasks struct {
	mu        sync.Mutex
	tasks     map[string]*models.Task
	createErr error
}

func (f *fakeTasks) FindByID(_ context.Context, id string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTasks) Create(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *task
	f.tasks[task.ID] = &copied
	return nil
}

func (f *fakeTasks) CompleteIfPending(_ context.Context, id string, completedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[id]
	if !ok || task.Status == constants.TaskStatusComplete {
		return false, nil
	}
	task.Status = constants.TaskStatusComplete
	task.CompletedAt = &completedAt
	return true, nil
}

func (f *fakeTasks) UpdateAssignee(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[id].AssignedToID = userID
	return nil
}

type fakeDocuments struct {
	mu      sync.Mutex
	docs    map[string]*models.Document
	failIDs map[string]bool // UpdateStatus fails for these IDs
}

func (f *fakeDocuments) FindByID(_ context.Context, id string) (*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, nil
	}
	copied := *doc
	return &copied, nil
}

func (f *fakeDocuments) FindByClientID(_ context.Context, clientID string) ([]*models.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []*models.Document
	for _, doc := range f.docs {
		if doc.ClientID == clientID {
			copied := *doc
			docs = append(docs, &copied)
		}
	}
	return docs, nil
}

func (f *fakeDocuments) Create(_ context.Context, doc *models.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *doc
	f.docs[doc.ID] = &copied
	return nil
}

func (f *fakeDocuments) UpdateStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[id] {
		return fmt.Errorf("store rejected update for %s", id)
	}
	f.docs[id].Status = status
	return nil
}

type fakeNotes struct {
	mu    sync.Mutex
	notes []*models.Note
}

func (f *fakeNotes) Create(_ context.Context, note *models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *note
	f.notes = append(f.notes, &copied)
	return nil
}

type fakeCommunications struct {
	mu    sync.Mutex
	comms []*models.Communication
}

func (f *fakeCommunications) Create(_ context.Context, comm *models.Communication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *comm
	f.comms = append(f.comms, &copied)
	return nil
}

type fakeTemplates struct {
	communication map[string]*models.CommunicationTemplate
	note          map[string]*models.NoteTemplate
}

func (f *fakeTemplates) FindCommunicationTemplate(_ context.Context, id string) (*models.CommunicationTemplate, error) {
	return f.communication[id], nil
}

func (f *fakeTemplates) FindNoteTemplate(_ context.Context, id string) (*models.NoteTemplate, error) {
	return f.note[id], nil
}

type fakeActivities struct {
	mu         sync.Mutex
	activities []*models.Activity
	createErr  error
}

func (f *fakeActivities) Create(_ context.Context, activity *models.Activity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *activity
	f.activities = append(f.activities, &copied)
	return nil
}

func (f *fakeActivities) ofType(activityType string) []*models.Activity {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Activity
	for _, a := range f.activities {
		if a.Type == activityType {
			matched = append(matched, a)
		}
	}
	return matched
}

type fakeNotifications struct {
	mu            sync.Mutex
	notifications []*models.Notification
	createErr     error
}

func (f *fakeNotifications) Create(_ context.Context, notification *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *notification
	f.notifications = append(f.notifications, &copied)
	return nil
}

func (f *fakeNotifications) FindByRecipient(_ context.Context, recipientID string, limit int) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && len(matched) < limit {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func (f *fakeNotifications) MarkAsRead(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notifications {
		if n.ID == id {
			n.IsRead = true
		}
	}
	return nil
}

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUsers) FindActiveByRole(_ context.Context, role string) ([]*models.User, error) {
	var matched []*models.User
	// Deterministic order for assertions
	for _, id := range sortedUserIDs(f.users) {
		u := f.users[id]
		if u.Role == role && u.IsActive {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func sortedUserIDs(users map[string]*models.User) []string {
	var ids []string
	for id := range users {
		ids = append(ids, id)
	}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	return ids
}

type fakeWorkflows struct {
	mu         sync.Mutex
	workflows  map[string]*models.Workflow
	executions []*models.WorkflowExecution
	lastRuns   map[string]time.Time
}

func (f *fakeWorkflows) FindByID(_ context.Context, id string) (*models.Workflow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.workflows[id], nil
}

func (f *fakeWorkflows) FindActiveByTrigger(_ context.Context, triggerType string) ([]*models.Workflow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Workflow
	for _, wf := range f.workflows {
		if wf.Status == constants.WorkflowStatusActive && wf.TriggerType == triggerType {
			matched = append(matched, wf)
		}
	}
	return matched, nil
}

func (f *fakeWorkflows) FindScheduled(_ context.Context) ([]*models.Workflow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Workflow
	for _, wf := range f.workflows {
		if wf.Status == constants.WorkflowStatusActive && wf.TriggerType == constants.TriggerSchedule && wf.Schedule != "" {
			matched = append(matched, wf)
		}
	}
	return matched, nil
}

func (f *fakeWorkflows) UpdateLastRun(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastRuns == nil {
		f.lastRuns = map[string]time.Time{}
	}
	f.lastRuns[id] = at
	return nil
}

func (f *fakeWorkflows) CreateExecution(_ context.Context, execution *models.WorkflowExecution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *execution
	f.executions = append(f.executions, &copied)
	return nil
}

// prefixDecryptor mimics field decryption by stripping an "enc:" prefix.
type prefixDecryptor struct{}

func (prefixDecryptor) Decrypt(ciphertext string) (string, error) {
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

// testEnv bundles an ActionService with all its fakes.
type testEnv struct {
	svc            *ActionService
	clients        *fakeClients
	tasks          *fakeTasks
	documents      *fakeDocuments
	notes          *fakeNotes
	communications *fakeCommunications
	templates      *fakeTemplates
	activities     *fakeActivities
	notifications  *fakeNotifications
	users          *fakeUsers
	workflows      *fakeWorkflows
}

func newTestEnv() *testEnv {
	env := &testEnv{
		clients: &fakeClients{clients: map[string]*models.Client{
			"client-1": {
				ID:     "client-1",
				Name:   "enc:Jane Doe",
				Email:  "enc:jane@example.com",
				Phone:  "enc:555-0100",
				Status: constants.ClientStatusLead,
				Tags:   []string{"referral"},
			},
		}},
		tasks:          &fakeTasks{tasks: map[string]*models.Task{}},
		documents:      &fakeDocuments{docs: map[string]*models.Document{}, failIDs: map[string]bool{}},
		notes:          &fakeNotes{},
		communications: &fakeCommunications{},
		templates: &fakeTemplates{
			communication: map[string]*models.CommunicationTemplate{},
			note:          map[string]*models.NoteTemplate{},
		},
		activities:    &fakeActivities{},
		notifications: &fakeNotifications{},
		users: &fakeUsers{users: map[string]*models.User{
			"user-1": {ID: "user-1", Name: "Alex Officer", Role: constants.RoleLoanOfficer, IsActive: true},
			"user-2": {ID: "user-2", Name: "Pat Processor", Role: constants.RoleProcessor, IsActive: true},
		}},
		workflows: &fakeWorkflows{workflows: map[string]*models.Workflow{}},
	}

	env.svc = NewActionService(ActionServiceDeps{
		Clients:        env.clients,
		Tasks:          env.tasks,
		Documents:      env.documents,
		Notes:          env.notes,
		Communications: env.communications,
		Templates:      env.templates,
		Activities:     env.activities,
		Notifications:  env.notifications,
		Users:          env.users,
		Decryptor:      prefixDecryptor{},
		HTTPClient:     http.DefaultClient,
		Environment:    "development",
	})
	return env
}

func testExecCtx() *models.ExecutionContext {
	return &models.ExecutionContext{
		ClientID:    "client-1",
		TriggerType: constants.TriggerClientCreated,
		TriggerData: map[string]interface{}{"source": "test"},
		UserID:      "user-1",
	}
}
