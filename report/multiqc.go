package report

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/RushAlz/circrna/sweep"
)

const (
	parentID          = "shift_plots"
	parentName        = "Shift Plots"
	parentDescription = "Stacked bar plots showing the agreement between tools and samples for different shift values"
)

// Fragment is a MultiQC custom-content section carrying one embedded image.
type Fragment struct {
	ID                string `json:"id"`
	ParentID          string `json:"parent_id"`
	ParentName        string `json:"parent_name"`
	ParentDescription string `json:"parent_description"`
	SectionName       string `json:"section_name"`
	Description       string `json:"description"`
	PlotType          string `json:"plot_type"`
	Data              string `json:"data"`
}

// NewFragment wraps the PNG plot of metric m for run id.
func NewFragment(id string, m sweep.Metric, png []byte) Fragment {
	img := fmt.Sprintf(`<div class="mqc-custom-content-image"><img src="data:image/png;base64,%s" /></div>`,
		base64.StdEncoding.EncodeToString(png))
	return Fragment{
		ID:                fmt.Sprintf("%s_shifts_%s", id, m),
		ParentID:          parentID,
		ParentName:        parentName,
		ParentDescription: parentDescription,
		SectionName:       m.Title(),
		Description:       parentDescription + ", considering and ignoring strand",
		PlotType:          "image",
		Data:              img,
	}
}

// WriteFragment writes f as indented JSON.
func WriteFragment(w io.Writer, f Fragment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	return enc.Encode(f)
}
