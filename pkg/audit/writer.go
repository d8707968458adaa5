package audit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	md "github.com/nao1215/markdown"

	"github.com/agentstation/contactmerge/pkg/errors"
	"github.com/agentstation/contactmerge/pkg/staging"
)

// Format is an audit log output format.
type Format string

// Supported formats.
const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat parses a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", &errors.ValidationError{Field: "audit-format", Value: s, Message: "must be text or markdown"}
	}
}

// WriteText writes a header line followed by one line per entry.
func (l *Log) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "# run %s started %s\n", l.runID, l.started.Format(time.RFC3339)); err != nil {
		return err
	}
	for _, line := range l.Lines() {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteMarkdown writes the log as a Markdown report with one section per
// entry kind.
func (l *Log) WriteMarkdown(w io.Writer) error {
	doc := md.NewMarkdown(w)
	doc.H1("Merge audit").
		BulletList(
			"Run: "+md.Code(l.runID),
			"Started: "+l.started.Format(time.RFC3339),
		)

	if s := l.Filter(KindSummary); len(s) > 0 && s[len(s)-1].Summary != nil {
		sum := s[len(s)-1].Summary
		doc.H2("Summary")
		rows := make([][]string, 0, len(sum.Sheets))
		for _, sc := range sum.Sheets {
			rows = append(rows, []string{sc.Sheet, strconv.Itoa(sc.Valid)})
		}
		doc.Table(md.TableSet{Header: []string{"Sheet", "Valid rows"}, Rows: rows})
		doc.BulletList(
			fmt.Sprintf("Rejected rows: %d", sum.Rejected),
			fmt.Sprintf("Merges: %d", sum.Merges),
			fmt.Sprintf("ER contacts: %d", sum.ER),
			fmt.Sprintf("Other contacts: %d", sum.Other),
		)
	}

	if merges := l.Filter(KindMerge); len(merges) > 0 {
		doc.H2("Merges")
		rows := make([][]string, len(merges))
		for i, e := range merges {
			rows[i] = []string{strconv.Itoa(i + 1), e.Pass, e.Rule, cell(e.Incoming), cell(e.Result)}
		}
		doc.Table(md.TableSet{Header: []string{"#", "Pass", "Rule", "Incoming", "Result"}, Rows: rows})
	}

	if invalid := l.Filter(KindInvalidRow); len(invalid) > 0 {
		doc.H2("Rejected rows")
		rows := make([][]string, len(invalid))
		for i, e := range invalid {
			rows[i] = []string{e.Sheet, strconv.Itoa(e.Row), cell(strings.Join(e.Cells, " / ")), cell(e.Reason)}
		}
		doc.Table(md.TableSet{Header: []string{"Sheet", "Row", "Cells", "Reason"}, Rows: rows})
	}

	return doc.Build()
}

// Save writes the log to path in the given format. The file is replaced.
func (l *Log) Save(path string, format Format) error {
	set := &staging.Set{}
	defer set.Discard()
	if err := l.Stage(set, path, format); err != nil {
		return err
	}
	return set.Commit()
}

// Stage writes the log into set. path is written when set is committed.
func (l *Log) Stage(set *staging.Set, path string, format Format) error {
	f, err := set.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatMarkdown:
		err = l.WriteMarkdown(f)
	default:
		err = l.WriteText(f)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return errors.WrapIO("write", path, err)
}

// cell escapes characters that would break a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
