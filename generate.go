//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/contactmerge --repository.default-branch master --repository.path /

// Package contactmerge reads donor and contact workbooks, normalizes every
// recognized sheet into canonical contacts, and deduplicates them with an
// ordered set of exact-match merge passes.
//
// A typical run:
//
//	p, err := contactmerge.New()
//	if err != nil {
//		return err
//	}
//	wb, err := workbook.Read("donors.xlsx")
//	if err != nil {
//		return err
//	}
//	result, err := p.Process(ctx, wb)
//	if err != nil {
//		return err
//	}
//	err = workbook.Write("donors-merged.xlsx", result.Output())
package contactmerge
