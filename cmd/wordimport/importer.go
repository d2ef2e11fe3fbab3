package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/wordbook/wordbook/internal/word"
	"github.com/wordbook/wordbook/internal/word/service"
	"github.com/wordbook/wordbook/pkg/logger"
)

// Record is one entry of an import file: a full word plus an optional local
// image that is uploaded and referenced through imgUrl.
type Record struct {
	word.Word
	ImagePath string `json:"imagePath,omitempty"`
}

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, origin, filename string, reader io.Reader, size int64, contentType string) (string, error)
}

// Summary reports the outcome of an import run.
type Summary struct {
	Imported int
	Failed   int
}

// LoadRecords decodes a JSON array of records.
func LoadRecords(r io.Reader) ([]Record, error) {
	var recs []Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, fmt.Errorf("%w: %v", word.ErrMalformedRequest, err)
	}
	return recs, nil
}

// Import inserts every record once. A failing record is logged and skipped;
// connection failures abort the run since every later insert would fail too.
func Import(ctx context.Context, svc service.Service, images ImageUploader, baseDir string, recs []Record) (Summary, error) {
	var sum Summary
	for i := range recs {
		rec := recs[i]
		if rec.ImagePath != "" {
			url, err := uploadImage(ctx, images, baseDir, rec)
			if err != nil {
				logger.WithError(err).WithField("origin", rec.Origin).Warn("image upload failed; importing without image")
			} else {
				rec.ImgURL = url
			}
		}
		if _, err := svc.Import(ctx, &rec.Word); err != nil {
			if isConnectionErr(err) {
				return sum, err
			}
			sum.Failed++
			logger.WithError(err).WithField("index", i).Warn("skipping record")
			continue
		}
		sum.Imported++
	}
	return sum, nil
}

func uploadImage(ctx context.Context, images ImageUploader, baseDir string, rec Record) (string, error) {
	if images == nil {
		return "", fmt.Errorf("no image storage configured")
	}
	p := rec.ImagePath
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return "", err
	}
	contentType := mime.TypeByExtension(filepath.Ext(p))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return images.UploadImage(ctx, rec.Origin, filepath.Base(p), f, st.Size(), contentType)
}

func isConnectionErr(err error) bool {
	return errors.Is(err, word.ErrConnection)
}
