package models

import "time"

// Client is a borrower record. Name, Email and Phone hold ciphertext as loaded
// from the store; executors decrypt them into a ClientData snapshot before use
// and never write plaintext back into these fields.
type Client struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Status           string    `json:"status"`
	Tags             []string  `json:"tags"`
	AssignedToID     string    `json:"assignedToId"`
	CreatedDate      time.Time `json:"createdDate"`
	LastModifiedDate time.Time `json:"lastModifiedDate"`
}

// ClientData is the decrypted client snapshot fetched fresh per action
// invocation and used for placeholder substitution.
type ClientData struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Phone  string   `json:"phone"`
	Status string   `json:"status"`
	Tags   []string `json:"tags"`
}

// Task is a to-do item, optionally tied to a client.
type Task struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"clientId"`
	Text         string     `json:"text"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	DueDate      *time.Time `json:"dueDate"`
	AssignedToID string     `json:"assignedToId"`
	CompletedAt  *time.Time `json:"completedAt"`
	CreatedByID  string     `json:"createdById"`
	CreatedDate  time.Time  `json:"createdDate"`
}

// Document is a loan-file document record. REQUEST_DOCUMENT creates placeholder
// records with empty file fields and status REQUESTED.
type Document struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"clientId"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	FileName    string     `json:"fileName"`
	FilePath    string     `json:"filePath"`
	DueDate     *time.Time `json:"dueDate"`
	Message     string     `json:"message"`
	CreatedDate time.Time  `json:"createdDate"`
}

// Note is a freeform annotation on a client.
type Note struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Text        string    `json:"text"`
	Tags        []string  `json:"tags"`
	IsPinned    bool      `json:"isPinned"`
	CreatedByID string    `json:"createdById"`
	CreatedDate time.Time `json:"createdDate"`
}

// Communication is an outbound email/SMS/letter record. Workflow-created
// communications are recorded directly as SENT; delivery is not modelled.
type Communication struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	Channel     string    `json:"channel"`
	Recipient   string    `json:"recipient"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
	Status      string    `json:"status"`
	TemplateID  string    `json:"templateId"`
	CreatedByID string    `json:"createdById"`
	CreatedDate time.Time `json:"createdDate"`
}

// CommunicationTemplate is a reusable message template. Type must match the
// channel of the action that loads it (EMAIL, SMS or LETTER).
type CommunicationTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NoteTemplate is a reusable note body.
type NoteTemplate struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Activity is an append-only audit entry. Every successful executor (and some
// failed ones) writes one as part of its contract.
type Activity struct {
	ID          string                 `json:"id"`
	ClientID    string                 `json:"clientId"`
	UserID      string                 `json:"userId"`
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
	CreatedDate time.Time              `json:"createdDate"`
}

// Notification is an in-app notification for a user.
type Notification struct {
	ID          string    `json:"id"`
	RecipientID string    `json:"recipientId"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Link        string    `json:"link"`
	IsRead      bool      `json:"isRead"`
	CreatedDate time.Time `json:"createdDate"`
}

// User is a CRM user (loan officer, processor, assistant, admin).
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"isActive"`
}
