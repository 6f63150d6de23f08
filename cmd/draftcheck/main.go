// Command draftcheck validates a stored campaign draft offline.
//
//	draftcheck [-mode publish|interactive] [-preview] draft.json
//
// The file may hold a full draft record or the bare draft. The exit code is
// 1 when the draft has violations and 2 on usage or read errors.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/creator-marketplace/backend/internal/models"
	"github.com/creator-marketplace/backend/internal/preview"
	"github.com/creator-marketplace/backend/internal/validation"
)

type report struct {
	File    string                  `json:"file"`
	Mode    string                  `json:"mode"`
	Valid   bool                    `json:"valid"`
	Errors  []validation.FieldError `json:"errors"`
	Preview *preview.Preview        `json:"preview,omitempty"`
}

func main() {
	modeFlag := flag.String("mode", "publish", "validation mode: publish or interactive")
	withPreview := flag.Bool("preview", false, "include projections and review warnings")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: draftcheck [-mode publish|interactive] [-preview] draft.json")
		os.Exit(2)
	}

	mode, ok := validation.ParseMode(*modeFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *modeFlag)
		os.Exit(2)
	}

	path := flag.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	draft, err := decodeDraft(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		os.Exit(2)
	}

	r := check(path, draft, mode, *withPreview, time.Now())
	if err := writeReport(os.Stdout, r); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if !r.Valid {
		os.Exit(1)
	}
}

// decodeDraft accepts either a draft record ({"draft": {...}}) or a bare
// draft.
func decodeDraft(data []byte) (*models.CampaignDraft, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var d models.CampaignDraft
	if inner, ok := probe["draft"]; ok {
		if err := json.Unmarshal(inner, &d); err != nil {
			return nil, fmt.Errorf("decode draft: %w", err)
		}
	} else if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	d.Normalize()
	return &d, nil
}

func check(path string, d *models.CampaignDraft, mode validation.Mode, withPreview bool, now time.Time) report {
	errs := validation.Validate(d, mode)
	if errs == nil {
		errs = []validation.FieldError{}
	}
	r := report{File: path, Mode: mode.String(), Valid: len(errs) == 0, Errors: errs}
	if withPreview {
		p := preview.Build(d, now)
		r.Preview = &p
	}
	return r
}

func writeReport(w io.Writer, r report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
