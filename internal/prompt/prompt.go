// Package prompt builds the instruction sent to the generative API and the
// JSON schema its answer has to follow.
package prompt

import "strings"

const header = `以下は現在直面している対応するべき問題または事象です。添付した指定構造に分解・分類し、TODO及びTaskに因子分解し日本語で出力してください。

構造化出力指定型各フィールドの説明:
- Todo: 事象のタイトル、概要、関連するIssueのリスト、作成日時を含む。
    - title: 事象のタイトル（短く端的に
    - summary: 事象の概要（要約
    - issues: 事象に関連するIssueのリスト
        - title: Issueの名称
        - description: Issueの対処法・問題解決法などの説明
        - estimated_working_hours: Issueの見積もり作業時間

いずれも大切なフィールドです。
フィールドが満ちていることを期待します。

対象:
- デジタル非ネイティブの日本語話者
- 非プログラマ
- 役割: ディレクター
- 具体的な職務: 窓口、折衝、判断や評価、知識や話術差異を翻訳する業務が多い
- 部下に仕事を割り振り、進捗を管理する



出力時の注意点:
- **重複出力**: 重複出力、または同じ内容の出力は避けてください。
- **構造化**: Raw JSONとして構造化されたデータを期待します。


以下本文:
` + "```\n"

const footer = "\n```"

// Compose embeds input verbatim. Any string is accepted, including an empty one.
func Compose(input string) string {
	var sb strings.Builder
	sb.Grow(len(header) + len(input) + len(footer))
	sb.WriteString(header)
	sb.WriteString(input)
	sb.WriteString(footer)
	return sb.String()
}

type Schema struct {
	Type             string             `json:"type"`
	Description      string             `json:"description,omitempty"`
	Properties       map[string]*Schema `json:"properties,omitempty"`
	Items            *Schema            `json:"items,omitempty"`
	Required         []string           `json:"required,omitempty"`
	PropertyOrdering []string           `json:"propertyOrdering,omitempty"`
}

// ResponseSchema describes the Todo/Issue shape in the API's schema dialect.
func ResponseSchema() *Schema {
	issue := &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"title":                   {Type: "STRING", Description: "Title of the issue."},
			"description":             {Type: "STRING", Description: "Detailed description of the issue."},
			"estimated_working_hours": {Type: "INTEGER", Description: "Estimated hours to resolve the issue."},
		},
		Required:         []string{"title", "description"},
		PropertyOrdering: []string{"title", "description", "estimated_working_hours"},
	}

	return &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"title":   {Type: "STRING", Description: "The main title of the output."},
			"summary": {Type: "STRING", Description: "A brief summary."},
			"issues":  {Type: "ARRAY", Description: "A list of identified issues.", Items: issue},
		},
		Required:         []string{"title", "summary", "issues"},
		PropertyOrdering: []string{"title", "summary", "issues"},
	}
}
