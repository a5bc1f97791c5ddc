// Package ingest 把外部数据（CSV、JSON、原始文本）转换为 hashtag 事务。
//
// CSV 需要一列 hashtags，单元格内用逗号分隔；没有逗号但含 # 的单元格按正文处理（见 ExtractHashtags）；JSON 是 {"hashtags": [...]} 对象数组。
// 任何一条记录的 hashtag 不是字符串或为空时整体拒绝（INVALID_INPUT）。
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/rushteam/tagmine/core"
)

// HashtagColumn 是 CSV 中 hashtag 列的列名（不区分大小写）。
const HashtagColumn = "hashtags"

// Record 是一条帖子的 hashtag 列表。
type Record struct {
	Hashtags []string `json:"hashtags" validate:"required,dive,required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ReadFile 按扩展名（.csv / .json）读取事务。
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSV(f)
	case ".json":
		return ReadJSON(f)
	default:
		return nil, core.NewInvalidInput("ingest: unsupported file type %q", filepath.Ext(path))
	}
}

// ReadCSV 读取带表头的 CSV，取 hashtags 列。
// 空单元格产生空事务，由 transaction.New 丢弃。
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, core.NewInvalidInput("ingest: empty csv")
	}
	if err != nil {
		return nil, core.NewInvalidInput("ingest: read csv header: %v", err)
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), HashtagColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, core.NewInvalidInput("ingest: csv has no %q column", HashtagColumn)
	}

	var out [][]string
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.NewInvalidInput("ingest: csv line %d: %v", line, err)
		}
		if col >= len(row) {
			out = append(out, nil)
			continue
		}
		out = append(out, parseCell(row[col]))
	}
	return out, nil
}

// ReadJSON 读取 Record 数组。
func ReadJSON(r io.Reader) ([][]string, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, core.NewInvalidInput("ingest: decode json: %v", err)
	}
	out := make([][]string, 0, len(records))
	for i, rec := range records {
		if err := validate.Struct(rec); err != nil {
			return nil, core.NewInvalidInput("ingest: record %d: %v", i, err)
		}
		out = append(out, rec.Hashtags)
	}
	return out, nil
}

// parseCell 解析 CSV 单元格："#a, #b" 按逗号拆分，"sunny #beach #sun" 提取 # 词。
func parseCell(cell string) []string {
	if !strings.Contains(cell, ",") && strings.Contains(cell, "#") {
		return ExtractHashtags(cell)
	}
	return ParseQuery(cell)
}

// ParseQuery 把 "a, b ,c" 拆成 hashtag 列表，丢弃空片段。不做归一化。
func ParseQuery(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExtractHashtags 从帖子正文中提取以 # 开头的词，去掉尾随标点。
//
//	ExtractHashtags("sunny day #Beach #sun!") // ["#Beach", "#sun"]
func ExtractHashtags(text string) []string {
	var out []string
	for _, field := range strings.Fields(text) {
		if !strings.HasPrefix(field, "#") {
			continue
		}
		tag := strings.TrimRight(field, ".,;:!?)\"'")
		if len(tag) > 1 {
			out = append(out, tag)
		}
	}
	return out
}
