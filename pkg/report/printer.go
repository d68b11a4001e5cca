package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aquasecurity/polaris-lens/pkg/ext"
	"k8s.io/cli-runtime/pkg/printers"
	"sigs.k8s.io/yaml"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// TableWriter is implemented by everything that can be printed as a table.
// Columns are separated with tabs.
type TableWriter interface {
	WriteTable(w io.Writer) error
}

// Printer writes reports in one of the supported Formats.
type Printer struct {
	format string
}

// NewPrinter returns a Printer for format. An empty format means table.
func NewPrinter(format string) (*Printer, error) {
	if format == "" {
		format = FormatTable
	}
	if !ext.ContainsString(Formats, format) {
		return nil, fmt.Errorf("invalid output format %q, allowed formats are: %s", format, strings.Join(Formats, ","))
	}
	return &Printer{format: format}, nil
}

func (p *Printer) Print(obj TableWriter, w io.Writer) error {
	switch p.format {
	case FormatJSON:
		out, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case FormatYAML:
		out, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		tw := printers.GetNewTabWriter(w)
		if err := obj.WriteTable(tw); err != nil {
			return err
		}
		return tw.Flush()
	}
}
