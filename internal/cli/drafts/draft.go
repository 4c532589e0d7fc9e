package drafts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/cleftcare/casecal/internal/cli"
	"github.com/cleftcare/casecal/internal/cli/render"
	"github.com/cleftcare/casecal/internal/constants"
	"github.com/cleftcare/casecal/internal/logger"
	"github.com/cleftcare/casecal/internal/models"
	"github.com/cleftcare/casecal/internal/utils"
)

type DraftCmd struct {
	Save   DraftSaveCmd   `cmd:"" help:"Save a draft."`
	Show   DraftShowCmd   `cmd:"" help:"Print a draft."`
	List   DraftListCmd   `cmd:"" help:"List drafts." default:"1"`
	Delete DraftDeleteCmd `cmd:"" help:"Delete a draft."`
}

type DraftSaveCmd struct {
	Key string `help:"Store key. Required with --data; defaults to a new home-visit key otherwise."`

	// Raw documents
	Data string `help:"JSON document to store as-is ('-' reads stdin)."`

	// Home-visit form fields
	HN      string `help:"Hospital number."`
	Patient string `short:"p" help:"Patient name."`
	Date    string `short:"d" help:"Planned visit day (YYYY-MM-DD)."`
	Status  string `help:"Visit status." default:"Pending"`
	Note    string `short:"n" help:"Free-text note."`
}

func (c *DraftSaveCmd) Run(ctx *cli.Context) error {
	var d models.Draft
	if c.Data != "" {
		data, err := c.readData()
		if err != nil {
			return err
		}
		if c.Key == "" {
			return fmt.Errorf("--key is required with --data")
		}
		d = models.Draft{Key: c.Key, Data: data}
	} else {
		hv := models.HomeVisitDraft{
			ID:          uuid.NewString(),
			HN:          c.HN,
			PatientName: c.Patient,
			VisitDate:   c.Date,
			Status:      c.Status,
			Note:        c.Note,
			CreatedAt:   time.Now(),
		}
		var err error
		if d, err = EncodeHomeVisit(hv, c.Key); err != nil {
			return err
		}
	}

	d.UpdatedAt = time.Now()
	if err := ctx.Store.SaveDraft(d); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	logger.Info("draft saved", "key", d.Key)
	fmt.Fprintf(ctx.Writer(), "Saved draft: %s\n", d.Key)
	return nil
}

// EncodeHomeVisit validates hv and wraps it as a draft stored under key, or
// under hv.Key() when key is empty.
func EncodeHomeVisit(hv models.HomeVisitDraft, key string) (models.Draft, error) {
	if err := hv.Validate(); err != nil {
		return models.Draft{}, err
	}
	data, err := json.Marshal(hv)
	if err != nil {
		return models.Draft{}, fmt.Errorf("failed to encode draft: %w", err)
	}
	if key == "" {
		key = hv.Key()
	}
	return models.Draft{Key: key, Data: data}, nil
}

func (c *DraftSaveCmd) readData() (json.RawMessage, error) {
	raw := []byte(c.Data)
	if c.Data == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		raw = b
	}
	raw = bytes.TrimSpace(raw)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("--data is not valid JSON")
	}
	return raw, nil
}

type DraftShowCmd struct {
	Key string `arg:"" help:"Draft key."`
}

func (c *DraftShowCmd) Run(ctx *cli.Context) error {
	d, err := ctx.Store.GetDraft(c.Key)
	if err != nil {
		return err
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, d.Data, "", "  "); err != nil {
		pretty.Reset()
		pretty.Write(d.Data)
	}
	out := ctx.Writer()
	fmt.Fprintf(out, "%s  %s\n", render.TitleStyle.Render(d.Key), render.MutedStyle.Render("updated "+humanize.Time(d.UpdatedAt)))
	fmt.Fprintln(out, pretty.String())
	return nil
}

type DraftListCmd struct {
	Prefix string `arg:"" optional:"" help:"Only keys starting with this prefix."`
}

func (c *DraftListCmd) Run(ctx *cli.Context) error {
	drafts, err := ctx.Store.ListDrafts(c.Prefix)
	if err != nil {
		return fmt.Errorf("failed to list drafts: %w", err)
	}

	out := ctx.Writer()
	if len(drafts) == 0 {
		fmt.Fprintln(out, "No drafts found.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(render.MutedStyle).
		Headers("KEY", "UPDATED", "SUMMARY")
	for _, d := range drafts {
		t.Row(d.Key, humanize.Time(d.UpdatedAt), Summary(d))
	}
	fmt.Fprintln(out, t.Render())
	return nil
}

// Summary describes a draft in one line. Home-visit drafts show the patient
// and visit day; other documents show their size.
func Summary(d models.Draft) string {
	if strings.HasPrefix(d.Key, constants.DraftPrefixHomeVisit) {
		var hv models.HomeVisitDraft
		if err := json.Unmarshal(d.Data, &hv); err == nil {
			var parts []string
			for _, p := range []string{hv.PatientName, hv.HN} {
				if p != "" {
					parts = append(parts, p)
				}
			}
			parts = append(parts, utils.ThaiDateLabel(hv.ToCase().DayKey()))
			return strings.Join(parts, " · ")
		}
	}
	return humanize.Bytes(uint64(len(d.Data)))
}

type DraftDeleteCmd struct {
	Key string `arg:"" help:"Draft key."`
}

func (c *DraftDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.Store.GetDraft(c.Key); err != nil {
		return fmt.Errorf("failed to find draft %s: %w", c.Key, err)
	}
	if err := ctx.Store.DeleteDraft(c.Key); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	fmt.Fprintf(ctx.Writer(), "Deleted draft: %s\n", c.Key)
	return nil
}
