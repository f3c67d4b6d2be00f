package main

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/muhammadolammi/resumeforge/internal/database"
	"github.com/muhammadolammi/resumeforge/internal/docmodel"
	"github.com/muhammadolammi/resumeforge/internal/docxwriter"
	"github.com/muhammadolammi/resumeforge/internal/extract"
	"github.com/streadway/amqp"
)

const improvedResumeTitle = "Improved Resume"

var errNoFile = errors.New("no file provided")

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// handleJob runs one job end to end: bookkeeping in the database, status
// updates on the exchange, and the generation itself.
func handleJob(ctx context.Context, workerConfig *WorkerConfig, job Job) error {
	if err := job.Validate(); err != nil {
		if job.ID != uuid.Nil {
			publishUpdate(workerConfig, job.ID, StatusFailed, "generation failed", map[string]any{
				"error": err.Error(),
			})
		}
		return err
	}

	existing, err := workerConfig.DB.GetGeneration(ctx, job.ID)
	switch {
	case err == nil && existing.Status == StatusCompleted:
		log.Info("job already completed, skipping", "job_id", job.ID)
		return nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		log.Warn("could not look up generation", "job_id", job.ID, "err", err)
	}

	sourceName := job.FileName
	if job.Kind == JobKindCreate && job.Form != nil {
		sourceName = job.Form.FullName
	}
	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.DB.CreateGeneration(ctx, database.CreateGenerationParams{
			ID:         job.ID,
			UserID:     uuid.NullUUID{UUID: job.UserID, Valid: job.UserID != uuid.Nil},
			Kind:       job.Kind,
			Status:     StatusProcessing,
			SourceName: nullString(sourceName),
		})
	})
	if err != nil {
		err = fmt.Errorf("failed to record generation: %w", err)
		publishUpdate(workerConfig, job.ID, StatusFailed, "generation failed", map[string]any{
			"error": err.Error(),
		})
		return err
	}
	publishUpdate(workerConfig, job.ID, StatusProcessing, "generation started", nil)

	result, jobErr := runJob(ctx, workerConfig, job)
	if jobErr != nil && ctx.Err() != nil {
		// shutting down: leave the row processing so the redelivered job can run again
		return fmt.Errorf("job interrupted: %w", errors.Join(ctx.Err(), jobErr))
	}
	if jobErr != nil {
		_, err := retry(3, func() (any, error) {
			return nil, workerConfig.DB.FailGeneration(ctx, database.FailGenerationParams{
				ID:    job.ID,
				Error: nullString(jobErr.Error()),
			})
		})
		if err != nil {
			log.Error("failed to mark generation failed", "job_id", job.ID, "err", err)
		}
		publishUpdate(workerConfig, job.ID, StatusFailed, "generation failed", map[string]any{
			"error": jobErr.Error(),
		})
		return jobErr
	}

	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.DB.CompleteGeneration(ctx, database.CompleteGenerationParams{
			ID:            job.ID,
			Markdown:      nullString(result.Resume),
			Critique:      nullString(result.Summary),
			DocxObjectKey: nullString(result.DocxObjectKey),
		})
	})
	if err != nil {
		publishUpdate(workerConfig, job.ID, StatusFailed, "generation failed", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to save generation after retries: %w", err)
	}

	publishUpdate(workerConfig, job.ID, StatusCompleted, "generation completed", map[string]any{
		"resume":          result.Resume,
		"summary":         result.Summary,
		"docx_object_key": result.DocxObjectKey,
		"docx_file_name":  result.DocxFileName,
	})
	return nil
}

// runJob produces the resume markdown for job, renders it to docx and stores it.
func runJob(ctx context.Context, workerConfig *WorkerConfig, job Job) (JobResult, error) {
	var (
		result JobResult
		title  string
	)
	userID := job.UserID.String()

	switch job.Kind {
	case JobKindCreate:
		if job.Form == nil {
			return result, fmt.Errorf("%w: %s", errMissingFields, strings.Join(requiredFormFields, ", "))
		}
		if err := job.Form.Validate(); err != nil {
			return result, err
		}
		resume, err := workerConfig.Writer.Generate(ctx, userID, createResumePrompt(*job.Form))
		if err != nil {
			return result, fmt.Errorf("error creating resume: %w", err)
		}
		result.Resume = CleanMarkdown(resume)
		result.DocxFileName = docxFileName(job.Form.FullName)

	case JobKindReview:
		data, err := jobFile(ctx, workerConfig, job)
		if err != nil {
			return result, err
		}
		mime := job.Mime
		if mime == "" {
			mime = extract.MimeFromName(job.FileName)
		}
		resumeText, err := extract.Text(mime, data)
		if err != nil {
			return result, fmt.Errorf("text extraction error: %w", err)
		}

		summary, err := workerConfig.Coach.Generate(ctx, userID, critiquePrompt(resumeText))
		if err != nil {
			return result, fmt.Errorf("error reviewing resume: %w", err)
		}
		resume, err := workerConfig.Rewriter.Generate(ctx, userID, rewritePrompt(resumeText))
		if err != nil {
			return result, fmt.Errorf("error rewriting resume: %w", err)
		}
		result.Summary = CleanMarkdown(summary)
		result.Resume = CleanMarkdown(resume)
		result.DocxFileName = "improved-resume.docx"
		title = improvedResumeTitle

	default:
		return result, fmt.Errorf("unknown job kind %q", job.Kind)
	}

	doc := docmodel.Convert(result.Resume)
	docxBytes, err := docxwriter.Render(doc, docxwriter.Options{Title: title})
	if err != nil {
		return result, fmt.Errorf("error generating word document: %w", err)
	}

	key := objectKey(job.ID.String(), result.DocxFileName)
	_, err = retry(3, func() (any, error) {
		return nil, workerConfig.Storage.Put(ctx, key, docxwriter.ContentType, docxBytes)
	})
	if err != nil {
		return result, fmt.Errorf("file upload error: %w", err)
	}
	result.DocxObjectKey = key

	log.Debug("document rendered", "job_id", job.ID, "blocks", len(doc), "bytes", len(docxBytes))
	return result, nil
}

// jobFile returns the uploaded resume, decoding inline base64 (with or
// without a data URL prefix) or downloading it from R2.
func jobFile(ctx context.Context, workerConfig *WorkerConfig, job Job) ([]byte, error) {
	switch {
	case job.File != "":
		encoded := job.File
		if strings.HasPrefix(encoded, "data:") {
			if i := strings.Index(encoded, ","); i >= 0 {
				encoded = encoded[i+1:]
			}
		}
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("invalid file encoding: %w", err)
		}
		return data, nil

	case job.ObjectKey != "":
		data, err := retry(3, func() ([]byte, error) {
			return workerConfig.Storage.Get(ctx, job.ObjectKey)
		})
		if err != nil {
			return nil, fmt.Errorf("file download error: %w", err)
		}
		return data, nil

	default:
		return nil, errNoFile
	}
}

func publishUpdate(workerConfig *WorkerConfig, jobID uuid.UUID, status, message string, extra map[string]any) {
	update := map[string]any{
		"job_id":    jobID,
		"status":    status,
		"message":   message,
		"timestamp": time.Now(),
	}
	for k, v := range extra {
		update[k] = v
	}
	if err := workerConfig.Updates.Publish(jobID.String(), update); err != nil {
		log.Warn("failed to publish update", "job_id", jobID, "status", status, "err", err)
	}
}

func worker(ctx context.Context, id int, workerConfig *WorkerConfig, wg *sync.WaitGroup) {
	defer wg.Done()
	conn, err := amqp.Dial(workerConfig.RABBITMQUrl)
	if err != nil {
		log.Fatal("error dialling rabbitmq", "err", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal("error connecting to rabbitmq channel", "err", err)
	}
	defer ch.Close()

	if err := ch.Qos(1, 0, false); err != nil {
		log.Fatal("failed to set prefetch", "err", err)
	}

	msgs, err := ch.Consume(
		jobsQueue, // queue name
		"",        // consumer tag
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		log.Fatal("error consuming rabbitmq message", "err", err)
	}

	logger := log.With("worker", id+1)
	for {
		var msg amqp.Delivery
		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			msg = d
		}

		job := Job{}
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			logger.Error("error unmarshalling message body", "err", err)
			if job.ID != uuid.Nil {
				publishUpdate(workerConfig, job.ID, StatusFailed, "generation failed", nil)
			}
			_ = msg.Nack(false, false)
			continue
		}

		logger.Info("processing job", "job_id", job.ID, "kind", job.Kind)
		start := time.Now()
		err := handleJob(ctx, workerConfig, job)
		switch {
		case ctx.Err() != nil:
			logger.Warn("job interrupted, requeueing", "job_id", job.ID, "err", err)
		case err != nil:
			logger.Error("⚠️ job failed", "job_id", job.ID, "err", err)
		default:
			logger.Info("job completed", "job_id", job.ID, "duration", time.Since(start).Round(time.Millisecond))
		}
		if err := settleDelivery(ctx, msg); err != nil {
			logger.Error("failed to settle delivery", "job_id", job.ID, "err", err)
		}
	}
}

// settleDelivery acks a handled message, or requeues it when the worker is
// shutting down mid-job.
func settleDelivery(ctx context.Context, msg amqp.Delivery) error {
	if ctx.Err() != nil {
		return msg.Nack(false, true)
	}
	return msg.Ack(false)
}

func (workerConfig *WorkerConfig) StartConsumerWorkerPool(ctx context.Context, numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		log.Info("worker started", "worker", i+1)
		go worker(ctx, i, workerConfig, &wg)
	}
	wg.Wait() // block until all workers finish
}
