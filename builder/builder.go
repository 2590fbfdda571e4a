// Package builder generates a Croissant document from a CSV file: one Field
// per header column, typed from the first data row, plus a digest of the
// file.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	croissant "github.com/reoring/croissant"
	"github.com/reoring/croissant/checksum"
	"github.com/reoring/croissant/codec"
	"github.com/reoring/croissant/internal/csvsample"
)

const (
	DefaultVersion = "1.0.0"
	DefaultOutput  = "croissant.json"

	FileObjectID = "data-file"
	RecordSetID  = "records"
	EncodingCSV  = "text/csv"
)

// Options configures one generation run.
type Options struct {
	CSVPath     string
	Name        string
	Description string
	License     string // license URL
	Creator     string // creator name
	URL         string
	CiteAs      string
	Version     string // DefaultVersion when empty
	Output      string // DefaultOutput when empty

	Digest    checksum.Algorithm // SHA256 when empty
	ChunkSize int                // checksum.DefaultChunkSize when zero
	Now       func() time.Time   // time.Now when nil
	Logger    *slog.Logger       // discarded when nil
}

func (o Options) withDefaults() Options {
	if o.Version == "" {
		o.Version = DefaultVersion
	}
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Digest == "" {
		o.Digest = checksum.SHA256
	}
	if o.ChunkSize == 0 {
		o.ChunkSize = checksum.DefaultChunkSize
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Build reads the CSV named by opts and assembles the document. It fails with
// croissant.ErrNotFound when the CSV does not exist and with
// croissant.ErrInvalidInput when it has no header row.
func Build(ctx context.Context, opts Options) (*croissant.Document, error) {
	opts = opts.withDefaults()
	logger := opts.Logger.With("csv", opts.CSVPath)

	if _, err := os.Stat(opts.CSVPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("CSV not found: %s: %w", opts.CSVPath, croissant.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", opts.CSVPath, err)
	}

	sample, err := csvsample.ReadFile(opts.CSVPath)
	if err != nil {
		return nil, err
	}
	if len(sample.Headers) == 0 {
		return nil, fmt.Errorf("CSV has no headers: %s: %w", opts.CSVPath, croissant.ErrInvalidInput)
	}
	logger.Debug("read CSV header", "columns", len(sample.Headers))

	fields := make([]croissant.Field, 0, len(sample.Headers))
	for _, col := range sample.Headers {
		fields = append(fields, newField(col, croissant.InferType(sample.Value(col))))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	digest, err := checksum.File(opts.CSVPath, opts.Digest, opts.ChunkSize)
	if err != nil {
		return nil, err
	}
	logger.Debug("computed digest", "algorithm", string(opts.Digest))

	published, err := codec.ISODate().Encode(ctx, opts.Now())
	if err != nil {
		return nil, err
	}

	file := croissant.FileObject{
		Type:           croissant.TypeFileObject,
		ID:             FileObjectID,
		Name:           filepath.Base(opts.CSVPath),
		ContentURL:     opts.CSVPath,
		EncodingFormat: EncodingCSV,
	}
	switch opts.Digest {
	case checksum.MD5:
		file.MD5 = digest
	default:
		file.SHA256 = digest
	}

	return &croissant.Document{
		Type:          croissant.TypeDataset,
		ConformsTo:    croissant.ConformsTo10,
		Name:          opts.Name,
		Description:   opts.Description,
		License:       opts.License,
		URL:           opts.URL,
		CiteAs:        opts.CiteAs,
		Creator:       croissant.Creator{Type: croissant.TypePerson, Name: opts.Creator},
		DatePublished: published,
		Version:       opts.Version,
		Distribution:  []croissant.FileObject{file},
		RecordSet: []croissant.RecordSet{{
			Type:   croissant.TypeRecordSet,
			ID:     RecordSetID,
			Name:   RecordSetID,
			Fields: fields,
		}},
	}, nil
}

func newField(col string, dt croissant.DataType) croissant.Field {
	return croissant.Field{
		Type:        croissant.TypeField,
		ID:          RecordSetID + "/" + col,
		Name:        col,
		Description: "The " + col + " column",
		DataType:    dt,
		Source: croissant.FieldSource{
			FileObject: croissant.Ref{ID: FileObjectID},
			Extract:    croissant.Extract{Column: col},
		},
	}
}

// WriteFile writes doc as 2-space indented JSON with a trailing newline. The
// document is written to a temporary file next to path and renamed into
// place, so path never holds a partial document.
func WriteFile(doc *croissant.Document, path string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err = enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// Generate runs Build and WriteFile and returns the output path.
func Generate(ctx context.Context, opts Options) (string, error) {
	opts = opts.withDefaults()
	doc, err := Build(ctx, opts)
	if err != nil {
		return "", err
	}
	if err := WriteFile(doc, opts.Output); err != nil {
		return "", err
	}
	opts.Logger.Info("generated metadata", "output", opts.Output, "fields", len(doc.RecordSet[0].Fields))
	return opts.Output, nil
}
