// Command invoicegen renders an invoice JSON document to PDF or to a
// layout preview tree.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/wenzhi/invoicekit"
	"github.com/wenzhi/invoicekit/invoice"
)

type options struct {
	invoicePath string
	outPath     string
	fontPath    string
	preview     bool
	compress    bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invoicegen: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "invoicegen: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: go run ./cmd/invoicegen [flags] <invoice.json>\n")
		flag.PrintDefaults()
	}
	out := flag.String("o", "invoice.pdf", "Output path (PDF, or JSON with -preview)")
	font := flag.String("font", "", "TrueType font file for Chinese output")
	preview := flag.Bool("preview", false, "Emit the layout tree as JSON instead of a PDF")
	compress := flag.Bool("compress", false, "Compress content streams and embedded fonts")
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		return options{}, fmt.Errorf("missing invoice path")
	}
	opts.invoicePath = flag.Arg(0)
	opts.outPath = *out
	opts.fontPath = *font
	opts.preview = *preview
	opts.compress = *compress
	return opts, nil
}

func run(opts options) error {
	inv, err := loadInvoice(opts.invoicePath)
	if err != nil {
		return err
	}

	gen := invoicekit.New(invoicekit.WithCompression(opts.compress))
	if opts.fontPath != "" {
		data, err := os.ReadFile(opts.fontPath)
		if err != nil {
			return fmt.Errorf("read font: %w", err)
		}
		if err := gen.Registry().RegisterTrueType(opts.fontPath, data); err != nil {
			return fmt.Errorf("register font: %w", err)
		}
	}

	if opts.preview {
		tree, err := gen.Preview(inv)
		if err != nil {
			return err
		}
		return os.WriteFile(opts.outPath, tree, 0o644)
	}

	out, err := os.Create(opts.outPath)
	if err != nil {
		return err
	}
	if err := gen.RenderPDF(context.Background(), inv, out); err != nil {
		out.Close()
		os.Remove(opts.outPath)
		return err
	}
	return out.Close()
}

func loadInvoice(path string) (*invoice.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read invoice: %w", err)
	}
	var inv invoice.Invoice
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&inv); err != nil {
		return nil, fmt.Errorf("parse invoice: %w", err)
	}
	return &inv, nil
}
