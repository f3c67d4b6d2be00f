package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/muhammadolammi/resumeforge/internal/database"
	"github.com/muhammadolammi/resumeforge/internal/docmodel"
	"github.com/muhammadolammi/resumeforge/internal/docxwriter"
	"github.com/streadway/amqp"
)

func main() {
	log.SetReportTimestamp(true)
	log.SetTimeFormat(time.DateTime)

	if len(os.Args) > 1 && os.Args[1] == "convert" {
		if err := runConvert(os.Args[2:]); err != nil {
			log.Fatal("convert failed", "err", err)
		}
		return
	}

	_ = godotenv.Load()
	cfg, err := loadConfigFromEnv()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatal("error opening db", "err", err)
	}
	defer db.Close()
	dbqueries := database.New(db)

	awsConfig, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2.AccessKey, cfg.R2.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal("error creating aws config", "err", err)
	}

	// create agents and runners
	llm, err := newModel(ctx, cfg.GoogleApiKey, cfg.Model)
	if err != nil {
		log.Fatal("failed to create model", "err", err)
	}
	writer, err := newAgentRunner(llm, "resume_writer", "Write a resume from form data", writerInstruction)
	if err != nil {
		log.Fatal("failed to create agent", "agent", "resume_writer", "err", err)
	}
	coach, err := newAgentRunner(llm, "career_coach", "Critique an existing resume", coachInstruction)
	if err != nil {
		log.Fatal("failed to create agent", "agent", "career_coach", "err", err)
	}
	rewriter, err := newAgentRunner(llm, "resume_rewriter", "Rewrite an existing resume", rewriterInstruction)
	if err != nil {
		log.Fatal("failed to create agent", "agent", "resume_rewriter", "err", err)
	}

	conn, err := amqp.Dial(cfg.RabbitMQUrl)
	if err != nil {
		log.Fatal("error connecting to RabbitMQ", "err", err)
	}
	defer conn.Close()
	if err := declareTopology(conn); err != nil {
		log.Fatal("error declaring RabbitMQ topology", "err", err)
	}

	workerConfig := WorkerConfig{
		DB:          dbqueries,
		Storage:     newR2Store(awsConfig, cfg.R2),
		Updates:     &rabbitPublisher{conn: conn},
		RABBITMQUrl: cfg.RabbitMQUrl,
		Writer:      writer,
		Coach:       coach,
		Rewriter:    rewriter,
	}

	log.Info("starting consumer pool", "workers", cfg.WorkerCount, "model", cfg.Model)
	workerConfig.StartConsumerWorkerPool(ctx, cfg.WorkerCount)
	log.Info("shutting down")
}

// runConvert turns a local markdown file into a .docx:
//
//	resumeforge convert resume.md [resume.docx] [title]
func runConvert(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: %s convert <input.md> [output.docx] [title]", os.Args[0])
	}
	input := args[0]
	output := "resume.docx"
	if len(args) > 1 {
		output = args[1]
	}
	var opts docxwriter.Options
	if len(args) > 2 {
		opts.Title = args[2]
	}

	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}
	doc := docmodel.Convert(CleanMarkdown(string(src)))

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := docxwriter.Write(f, doc, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	log.Info("document written", "input", input, "output", output, "blocks", len(doc))
	return nil
}
