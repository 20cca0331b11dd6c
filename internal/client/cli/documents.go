package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/ingestctl/internal/client/models"
	"github.com/dmitrijs2005/ingestctl/internal/filex"
)

func (a *App) Documents(ctx context.Context, limit, offset int) error {
	l, err := a.api.ListDocuments(ctx, limit, offset)
	if err != nil {
		return err
	}
	renderDocumentList(a.out, l)
	return nil
}

func (a *App) Document(ctx context.Context, id string) error {
	d, err := a.api.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	renderDocument(a.out, d)
	return nil
}

func (a *App) Search(ctx context.Context, query string, limit int) error {
	r, err := a.api.SearchDocuments(ctx, query, limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d result(s) for %q\n", r.Count, r.Query)
	renderDocuments(a.out, r.Results, true)
	return nil
}

func (a *App) DocStats(ctx context.Context) error {
	s, err := a.api.DocumentStats(ctx)
	if err != nil {
		return err
	}
	renderDocumentStats(a.out, s)
	return nil
}

// Download saves a document's content. With out empty the file name comes
// from the server, then from the id; "-" writes to the console output.
func (a *App) Download(ctx context.Context, id string, format models.DownloadFormat, out string) error {
	d, err := a.api.DownloadDocument(ctx, id, format)
	if err != nil {
		return err
	}

	if out == "-" {
		_, err := a.out.Write(d.Data)
		return err
	}
	if out == "" {
		out = downloadName(id, format, d.Filename)
	}

	path, err := filex.EnsureParentDir(out)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, d.Data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	fmt.Fprintf(a.out, "Saved %s (%s, %s)\n", path, humanBytes(int64(len(d.Data))), orDash(d.ContentType))
	return nil
}

func downloadName(id string, format models.DownloadFormat, served string) string {
	if served != "" {
		// Never let the server pick a directory.
		return filepath.Base(served)
	}
	ext := ".md"
	if format == models.FormatJSON {
		ext = ".json"
	}
	return id + ext
}
