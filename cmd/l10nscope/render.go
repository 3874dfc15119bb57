package main

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/goliatone/go-l10nmgr"
)

func renderResult(out io.Writer, result *l10nmgr.Result) {
	if result == nil {
		return
	}
	fmt.Fprintf(out, "configuration %s, target language %d, preview language %d\n",
		result.Configuration, result.TargetLanguageID, result.PreviewLanguageID)

	var buffer bytes.Buffer
	table := tablewriter.NewWriter(&buffer)
	table.SetHeader([]string{"Page", "Title", "Record", "Fields", "Words"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, id := range result.Order {
		bucket, ok := result.Bucket(id)
		if !ok {
			continue
		}
		page, title := bucketLabel(bucket)
		refs := bucket.Refs()
		if len(refs) == 0 {
			table.Append([]string{page, title, "-", "0", "0"})
			continue
		}
		for _, ref := range refs {
			detail, _ := bucket.Detail(ref)
			table.Append([]string{
				page,
				title,
				ref.String(),
				strconv.Itoa(len(detail.Fields)),
				humanize.Comma(int64(detail.WordCount())),
			})
			page, title = "", ""
		}
	}

	table.SetFooter([]string{
		"",
		fmt.Sprintf("%d pages", len(result.Order)),
		fmt.Sprintf("%d records", result.Len()),
		humanize.Comma(int64(result.FieldCount)),
		humanize.Comma(int64(result.WordCount)),
	})
	table.Render()
	fmt.Fprintf(out, "%s\n", buffer.String())
}

func bucketLabel(bucket *l10nmgr.Bucket) (string, string) {
	if bucket.Floating() {
		return "floating", ""
	}
	title := ""
	if bucket.Header != nil {
		title = bucket.Header.Title
	}
	return strconv.FormatInt(bucket.ID, 10), title
}
