package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"plagiarism-service/internal/service"
)

func renderResult(resp service.AnalyzeResponse, compared int) string {
	var b strings.Builder

	verdict := "not plagiarized"
	if resp.IsPlagiarized {
		verdict = "PLAGIARIZED"
	}
	fmt.Fprintf(&b, "Submission: %s\n", resp.SubmissionID)
	fmt.Fprintf(&b, "Compared:   %d\n", compared)
	fmt.Fprintf(&b, "Score:      %.2f%%\n", resp.SimilarityScore)
	fmt.Fprintf(&b, "Verdict:    %s\n", verdict)

	if len(resp.Matches) == 0 {
		b.WriteString("No significant matches.\n")
		return b.String()
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Matched", "Similarity", "Phrases"})
	for _, m := range resp.Matches {
		tw.AppendRow(table.Row{
			m.MatchedID,
			fmt.Sprintf("%.2f%%", m.SimilarityPercentage),
			strings.Join(m.MatchedPhrases, "\n"),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft, WidthMax: 60},
	})

	b.WriteString(tw.Render())
	b.WriteString("\n")
	return b.String()
}
