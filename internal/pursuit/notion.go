// =============================================================================
// notion.go - Notionアーカイブ（任意機能）
// =============================================================================
//
// アラート送信済みの ChaseEvent を既存のNotionデータベースに1ページ
// として追記します。NOTION_TOKEN と NOTION_DATABASE_ID の両方が
// 設定されている場合のみ有効で、失敗してもスキャンは止めない。
//
// =============================================================================
package pursuit

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"
)

// NotionArchiver handles archiving alerted chase events to Notion
type NotionArchiver struct {
	client *notionapi.Client
	dbID   notionapi.DatabaseID
}

// NewNotionArchiver creates a new Notion archiver
func NewNotionArchiver(token, databaseID string) (*NotionArchiver, error) {
	if token == "" {
		return nil, fmt.Errorf("NOTION_TOKEN is required")
	}
	if databaseID == "" {
		return nil, fmt.Errorf("NOTION_DATABASE_ID is required")
	}
	return &NotionArchiver{
		client: notionapi.NewClient(notionapi.Token(token)),
		dbID:   notionapi.DatabaseID(databaseID),
	}, nil
}

// ArchiveChase appends one alerted chase event as a database page
func (a *NotionArchiver) ArchiveChase(ctx context.Context, ev ChaseEvent) error {
	properties := notionapi.Properties{
		"Title": notionapi.TitleProperty{
			Type: notionapi.PropertyTypeTitle,
			Title: []notionapi.RichText{
				{Text: &notionapi.Text{Content: ev.Title}},
			},
		},
		"URL": notionapi.URLProperty{
			Type: notionapi.PropertyTypeURL,
			URL:  ev.PageURL,
		},
		"Source": notionapi.SelectProperty{
			Type:   notionapi.PropertyTypeSelect,
			Select: notionapi.Option{Name: ev.SourceSite},
		},
		"AlertedAt": notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: ev.AlertedAt}},
			},
		},
	}

	if ev.Text != "" {
		excerpt := ev.Text
		if len(excerpt) > 2000 { // Notion rich_text limit
			excerpt = excerpt[:2000]
		}
		properties["Excerpt"] = notionapi.RichTextProperty{
			Type: notionapi.PropertyTypeRichText,
			RichText: []notionapi.RichText{
				{Text: &notionapi.Text{Content: excerpt}},
			},
		}
	}

	pageRequest := &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: a.dbID,
		},
		Properties: properties,
	}

	if _, err := a.client.Page.Create(ctx, pageRequest); err != nil {
		return fmt.Errorf("failed to archive chase: %w", err)
	}
	return nil
}
