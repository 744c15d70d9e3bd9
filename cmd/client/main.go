package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/urfave/cli/v2"

	"skin-relay/internal/adapters/exporter"
	"skin-relay/internal/domain"
	"skin-relay/internal/form"
	applog "skin-relay/internal/log"
	"skin-relay/internal/pkg/term"
)

const defaultServerURL = "http://localhost:8080"

func main() {
	app := &cli.App{
		Name:  "skin-client",
		Usage: "Share a custom skin and browse the community catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   defaultServerURL,
				Usage:   "Base URL of the skin relay server",
				EnvVars: []string{"SKIN_SERVER_URL"},
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 60 * time.Second,
				Usage: "HTTP request timeout",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			slog.SetDefault(applog.NewLogger(os.Stderr, c.String("log-level"), "text"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "submit",
				Usage: "Submit a skin by download link or archive file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Your name"},
					&cli.StringFlag{Name: "email", Usage: "Contact email"},
					&cli.StringFlag{Name: "telegram", Usage: "Telegram username"},
					&cli.StringFlag{Name: "link", Usage: "Download link (http or https)"},
					&cli.PathFlag{Name: "file", Usage: "Archive to upload (.zip, .rar, .7z)"},
				},
				Action: runSubmit,
			},
			{
				Name:  "skins",
				Usage: "List community skins",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Filter by name, author or package"},
				},
				Action: runSkins,
			},
			{
				Name:   "stats",
				Usage:  "Show repository counters",
				Action: runStats,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func newAPIClient(c *cli.Context) *form.APIClient {
	return form.NewAPIClient(c.String("server"), c.Duration("timeout"))
}

func runSkins(c *cli.Context) error {
	skins, err := newAPIClient(c).Skins(c.Context, c.String("query"))
	if err != nil {
		return fmt.Errorf("failed to fetch skins: %w", err)
	}
	prompter := term.NewPrompter()
	return exporter.NewConsoleExporter(os.Stdout, prompter.Width()).ExportSkins(skins)
}

func runStats(c *cli.Context) error {
	stats, err := newAPIClient(c).Stats(c.Context)
	if err != nil {
		return fmt.Errorf("failed to fetch stats: %w", err)
	}
	prompter := term.NewPrompter()
	return exporter.NewConsoleExporter(os.Stdout, prompter.Width()).ExportStats(stats)
}

func runSubmit(c *cli.Context) error {
	prompter := term.NewPrompter()
	ctrl := form.NewController(newAPIClient(c))

	// значения флагов используются только для первой заявки
	values := map[string]string{
		form.FieldName:     c.String("name"),
		form.FieldEmail:    c.String("email"),
		form.FieldTelegram: c.String("telegram"),
		form.FieldLink:     c.String("link"),
		form.FieldFile:     c.Path("file"),
	}

	for {
		closeFile, err := fillForm(ctrl, prompter, values)
		if err != nil {
			return err
		}

		err = ctrl.Submit(c.Context)
		closeFile()

		switch {
		case errors.Is(err, form.ErrInvalidForm):
			printFieldErrors(prompter, ctrl.Errors())
			if !prompter.Interactive() {
				return cli.Exit("form has invalid fields", 2)
			}
			values = map[string]string{}
			continue
		case err != nil:
			slog.Debug("submit failed", slog.String("error", err.Error()))
			prompter.Println(ctrl.ErrorMessage())
			var respErr *form.ResponseError
			if errors.As(err, &respErr) && respErr.Message != "" {
				prompter.Println("Server said:", respErr.Message)
			}
			return cli.Exit("", 1)
		}

		prompter.Println("Thank you! Your skin has been submitted for review.")
		if !prompter.Interactive() {
			return nil
		}
		again, err := prompter.Confirm("Submit another skin?")
		if err != nil || !again {
			return err
		}
		ctrl.Reset()
		values = map[string]string{}
	}
}

// fillForm переносит значения в форму, спрашивая недостающие в интерактивном режиме.
func fillForm(ctrl *form.Controller, p *term.Prompter, values map[string]string) (func(), error) {
	ask := func(field, label string) (string, error) {
		if v := values[field]; v != "" || !p.Interactive() {
			return v, nil
		}
		return p.Ask(label)
	}

	name, err := ask(form.FieldName, "Name")
	if err != nil {
		return nil, err
	}
	email, err := ask(form.FieldEmail, "Email")
	if err != nil {
		return nil, err
	}
	telegram, err := ask(form.FieldTelegram, "Telegram username")
	if err != nil {
		return nil, err
	}
	ctrl.SetName(name)
	ctrl.SetEmail(email)
	ctrl.SetTelegram(telegram)

	path := values[form.FieldFile]
	link := values[form.FieldLink]
	if path == "" && link == "" && p.Interactive() {
		upload, err := p.Confirm("Upload an archive instead of a link?")
		if err != nil {
			return nil, err
		}
		if upload {
			if path, err = p.Ask("Archive path"); err != nil {
				return nil, err
			}
		} else if link, err = p.Ask("Download link"); err != nil {
			return nil, err
		}
	}

	if path == "" {
		ctrl.SetMode(form.ModeLink)
		ctrl.RemoveFile()
		ctrl.SetLink(link)
		return func() {}, nil
	}

	ctrl.SetMode(form.ModeFile)
	attachment, closeFile, err := openAttachment(path)
	if err != nil {
		return nil, err
	}
	ctrl.SelectFile(attachment)
	return closeFile, nil
}

func openAttachment(path string) (*domain.Attachment, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return &domain.Attachment{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		Content: f,
	}, func() { f.Close() }, nil
}

func printFieldErrors(p *term.Prompter, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		p.Println(fmt.Sprintf("  %s: %s", field, errs[field]))
	}
}

