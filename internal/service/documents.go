package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/csg33k/staffdesk/internal/collection"
	"github.com/csg33k/staffdesk/internal/domain"
	"github.com/csg33k/staffdesk/internal/workflow"
)

const (
	uploader        = "Current User"
	uploadedContent = "This is a newly uploaded document."
)

// DocumentType classifies a file by its extension.
func DocumentType(fileName string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), ".")) {
	case "pdf":
		return domain.DocTypePDF
	case "jpg", "jpeg", "png", "gif":
		return domain.DocTypeImage
	case "xlsx", "xls", "csv":
		return domain.DocTypeSpreadsheet
	default:
		return domain.DocTypeFile
	}
}

// FormatSize renders a byte count the way documents display it, "1.50 MB".
func FormatSize(bytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
}

func (d *Dashboard) ListDocuments(ctx context.Context, q string) ([]domain.Document, error) {
	all, err := d.stores.Documents.List(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Filter(all, q, collection.DocumentFields), nil
}

func (d *Dashboard) GetDocument(ctx context.Context, id int64) (domain.Document, error) {
	return d.stores.Documents.Get(ctx, id)
}

// UploadDocument records an upload. The stored name is the draft name plus
// the uploaded file's extension.
func (d *Dashboard) UploadDocument(ctx context.Context, draft domain.DocumentDraft) (domain.Document, error) {
	var created domain.Document
	err := d.documentForm.Submit(ctx, draft,
		func(ctx context.Context, draft domain.DocumentDraft) (workflow.Outcome, error) {
			name := strings.TrimSpace(draft.Name)
			if ext := filepath.Ext(draft.FileName); ext != "" && !strings.EqualFold(filepath.Ext(name), ext) {
				name += ext
			}
			var err error
			created, err = d.stores.Documents.Add(ctx, domain.Document{
				Name:       name,
				Type:       DocumentType(draft.FileName),
				Size:       FormatSize(draft.SizeBytes),
				UploadedBy: uploader,
				UploadedAt: draft.UploadDate,
				Category:   draft.Category,
				Content:    uploadedContent,
			})
			if err != nil {
				return workflow.Outcome{}, err
			}
			d.observer.Mutation(domain.KindDocument, "create")
			d.log.Info("document uploaded", "id", created.ID, "type", created.Type)
			return workflow.Outcome{
				Title:       "Document uploaded",
				Description: created.Name + " has been uploaded successfully.",
			}, nil
		})
	return created, err
}

// DownloadDocument returns the document and announces the download.
func (d *Dashboard) DownloadDocument(ctx context.Context, id int64) (domain.Document, error) {
	doc, err := d.stores.Documents.Get(ctx, id)
	if err != nil {
		return domain.Document{}, err
	}
	d.feed.Success("Document downloaded", doc.Name+" has been downloaded.")
	return doc, nil
}

func (d *Dashboard) ListLibraries(ctx context.Context) ([]domain.Library, error) {
	return d.stores.Libraries.List(ctx)
}

func (d *Dashboard) FilterLibraries(ctx context.Context, q string) ([]domain.Library, error) {
	all, err := d.stores.Libraries.List(ctx)
	if err != nil {
		return nil, err
	}
	return collection.Filter(all, q, collection.LibraryFields), nil
}

// GetLibrary returns a library with its nested documents.
func (d *Dashboard) GetLibrary(ctx context.Context, id int64) (domain.Library, error) {
	return d.stores.Libraries.Get(ctx, id)
}

func (d *Dashboard) CreateLibrary(ctx context.Context, draft domain.LibraryDraft) (domain.Library, error) {
	var created domain.Library
	err := d.libraryForm.Submit(ctx, draft,
		func(ctx context.Context, draft domain.LibraryDraft) (workflow.Outcome, error) {
			var err error
			created, err = d.stores.Libraries.Add(ctx, domain.Library{
				Name:        draft.Name,
				Description: draft.Description,
			}.WithDocuments(nil))
			if err != nil {
				return workflow.Outcome{}, err
			}
			d.observer.Mutation(domain.KindLibrary, "create")
			return workflow.Outcome{
				Title:       "Library created",
				Description: created.Name + " library has been created successfully.",
			}, nil
		})
	return created, err
}

type documentTarget struct{ d *Dashboard }

func (t documentTarget) Describe(ctx context.Context, ref workflow.Ref) (any, string, error) {
	doc, err := t.d.stores.Documents.Get(ctx, ref.ID)
	if err != nil {
		return nil, "", err
	}
	return doc, fmt.Sprintf("%q", doc.Name), nil
}

func (t documentTarget) Remove(ctx context.Context, ref workflow.Ref) (workflow.RestoreFunc, error) {
	return removeAndRestore(ctx, t.d.stores.Documents, ref.ID)
}

// libraryTarget removes a library together with its nested documents, and
// the undo puts both back.
type libraryTarget struct{ d *Dashboard }

func (t libraryTarget) Describe(ctx context.Context, ref workflow.Ref) (any, string, error) {
	lib, err := t.d.stores.Libraries.Get(ctx, ref.ID)
	if err != nil {
		return nil, "", err
	}
	return lib, fmt.Sprintf("%q library", lib.Name), nil
}

func (t libraryTarget) Remove(ctx context.Context, ref workflow.Ref) (workflow.RestoreFunc, error) {
	return removeAndRestore(ctx, t.d.stores.Libraries, ref.ID)
}
