package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeforge/internal/database"
)

const (
	JobKindCreate = "create"
	JobKindReview = "review"

	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

type generationStore interface {
	GetGeneration(ctx context.Context, id uuid.UUID) (database.Generation, error)
	CreateGeneration(ctx context.Context, arg database.CreateGenerationParams) error
	CompleteGeneration(ctx context.Context, arg database.CompleteGenerationParams) error
	FailGeneration(ctx context.Context, arg database.FailGenerationParams) error
}

type objectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key, contentType string, body []byte) error
}

type textGenerator interface {
	Generate(ctx context.Context, userID, prompt string) (string, error)
}

type updatePublisher interface {
	Publish(jobID string, update map[string]any) error
}

type WorkerConfig struct {
	DB          generationStore
	Storage     objectStore
	Updates     updatePublisher
	RABBITMQUrl string

	// one agent per prompt family
	Writer   textGenerator
	Coach    textGenerator
	Rewriter textGenerator
}

// ResumeForm is the multi-step form submitted by the create flow.
type ResumeForm struct {
	FullName            string `json:"fullName"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Location            string `json:"location"`
	ProfessionalSummary string `json:"professionalSummary"`
	JobTitle            string `json:"jobTitle"`
	YearsOfExperience   string `json:"yearsOfExperience"`
	Skills              string `json:"skills"`
	WorkExperience      string `json:"workExperience"`
	Education           string `json:"education"`
	Certifications      string `json:"certifications"`
	AdditionalInfo      string `json:"additionalInfo"`
}

// Job is one message on the resume_jobs queue. Review jobs carry the upload
// either inline as base64 (File) or as an object key in R2.
type Job struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Kind      string      `json:"kind"`
	Form      *ResumeForm `json:"form,omitempty"`
	File      string      `json:"file,omitempty"`
	FileName  string      `json:"file_name,omitempty"`
	Mime      string      `json:"mime,omitempty"`
	ObjectKey string      `json:"object_key,omitempty"`
}

type JobResult struct {
	Resume        string `json:"resume"`
	Summary       string `json:"summary,omitempty"`
	DocxObjectKey string `json:"docx_object_key"`
	DocxFileName  string `json:"docx_file_name"`
}
