package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/ux"
)

// Documents are created by upload, so there is no create subcommand.
var documentsCRUD = crud[api.Document]{
	noun:  "document",
	label: "문서",
	get: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[api.Document], error) {
		return c.Documents.Get(ctx, id)
	},
	update: func(ctx context.Context, c *api.Client, id int, body any) (*api.Envelope[api.Document], error) {
		return c.Documents.Update(ctx, id, body)
	},
	remove: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[any], error) {
		return c.Documents.Delete(ctx, id)
	},
	detail: documentDetail,
	id:     func(d api.Document) int { return d.ID },
}

func newDocumentsCommand(cc *CommandContext) *cobra.Command {
	cmd := groupCommand("documents", "Manage project documents", "document", "docs")
	cmd.AddCommand(
		newDocumentsListCommand(cc),
		documentsCRUD.showCommand(cc),
		newDocumentsUploadCommand(cc),
		documentsCRUD.updateCommand(cc),
		documentsCRUD.deleteCommand(cc),
		newDocumentsDownloadURLCommand(cc),
	)
	return cmd
}

func newDocumentsListCommand(cc *CommandContext) *cobra.Command {
	var (
		filter api.DocumentFilter
		page   listFlags
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			filter.Page, filter.PerPage = page.page, page.perPage
			env, err := app.Client.Documents.List(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to list documents: %w", err)
			}
			if err := cc.Print(cmd, documentTable(env.Data), env); err != nil {
				return err
			}
			printPage(cc, cmd, env)
			return nil
		},
	}

	page.register(cmd)
	cmd.Flags().IntVar(&filter.ProjectID, "project", 0, "project ID")
	cmd.Flags().StringVar(&filter.Type, "type", "", "document type")
	cmd.Flags().StringVar(&filter.Department, "department", "", "department code")
	cmd.Flags().StringVar(&filter.Search, "search", "", "search text")
	return cmd
}

func newDocumentsUploadCommand(cc *CommandContext) *cobra.Command {
	var meta api.DocumentUpload

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a document",
		Long: `Upload a file as a project document. The title defaults to the file name.

Examples:
  gbms documents upload report.pdf --project 3 --type report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			defer f.Close()

			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			name := filepath.Base(path)
			if meta.Title == "" {
				meta.Title = name
			}
			env, err := app.Client.Documents.Upload(ctx, name, f, meta)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", path, err)
			}
			return printResult(cc, cmd, env, fmt.Sprintf("문서가 업로드되었습니다. (ID %d, %s)", env.Data.ID, format.FileSize(env.Data.FileSize)))
		},
	}

	cmd.Flags().StringVar(&meta.Title, "title", "", "document title")
	cmd.Flags().StringVar(&meta.DocType, "type", "", "document type")
	cmd.Flags().IntVar(&meta.ProjectID, "project", 0, "project ID")
	cmd.Flags().StringVar(&meta.Description, "description", "", "description")
	cmd.Flags().StringVar(&meta.Department, "department", "", "department code")
	return cmd
}

func newDocumentsDownloadURLCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "download-url <id>",
		Short: "Print the download link of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := cc.App()
			if err != nil {
				return err
			}
			link := app.Client.Documents.DownloadURL(id)
			if cc.textOutput() {
				return cc.Print(cmd, nil, link)
			}
			return cc.Print(cmd, nil, map[string]string{"url": link})
		},
	}
}

func documentDetail(d api.Document) *ux.Table {
	t := ux.NewTable("FIELD", "VALUE")
	t.Append("id", strconv.Itoa(d.ID))
	if d.ProjectID != nil {
		t.Append("project", strconv.Itoa(*d.ProjectID))
	}
	t.Append("title", d.Title)
	t.Append("type", d.DocType)
	t.Append("file", d.FileName)
	t.Append("size", format.FileSize(d.FileSize))
	if d.Version != "" {
		t.Append("version", d.Version)
	}
	t.Append("public", strconv.FormatBool(d.IsPublic))
	if d.Department != "" {
		t.Append("department", format.DepartmentLabel(d.Department))
	}
	t.Append("created", shortDate(d.CreatedAt))
	if d.CreatedBy != "" {
		t.Append("created by", d.CreatedBy)
	}
	return t
}
