package ingest

import (
	"path/filepath"
	"strconv"
	"strings"

	"insight-center-be/internal/entity"
	"insight-center-be/pkg/insights"
)

// ParseInsight builds an insight from a markdown file. The first level-1
// heading becomes the title and is removed from the body; without one the
// file name is used. A "NN-" file name prefix sets the sort order.
func ParseInsight(fileName, body string) *entity.Insight {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))

	insight := &entity.Insight{Category: "general"}
	if prefix, rest, ok := strings.Cut(base, "-"); ok {
		if n, err := strconv.Atoi(prefix); err == nil && n >= 0 && prefix[0] != '+' {
			insight.SortOrder = n
			base = rest
		}
	}

	title, rest, ok := insights.SplitTitle(strings.ReplaceAll(body, "\r\n", "\n"))
	if !ok {
		title = strings.ReplaceAll(base, "_", " ")
	}
	insight.Title = title
	insight.Body = rest

	if dir := filepath.Base(filepath.Dir(fileName)); dir != "." && dir != "insights" && dir != string(filepath.Separator) {
		insight.Category = dir
	}
	return insight
}
