package mailer

import (
	"strings"
	"testing"

	"github.com/andreyxaxa/Deletion-Request-Mailer/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestBuildBody_Placeholders(t *testing.T) {
	body := BuildBody(entity.SanitizedRequest{Facility: "Clinic A", RecordID: "123"})

	assert.Equal(t, "施設名: Clinic A\n削除依頼ID: 123\n入力日付: (未入力)\n\n--- 自由記載 ---\n(未入力)", body.Text)
	assert.Equal(t,
		"<p>施設名: Clinic A</p><p>削除依頼ID: 123</p><p>入力日付: (未入力)</p><p>&nbsp;</p><p>--- 自由記載 ---</p><p>(未入力)</p>",
		body.HTML,
	)
}

func TestBuildBody_AllFields(t *testing.T) {
	body := BuildBody(entity.SanitizedRequest{
		Facility:   "Clinic A",
		RecordID:   "123",
		RecordDate: "2024-05-01",
		Note:       "please remove",
	})

	assert.Equal(t, "施設名: Clinic A\n削除依頼ID: 123\n入力日付: 2024-05-01\n\n--- 自由記載 ---\nplease remove", body.Text)
}

func TestBuildBody_MultilineNote(t *testing.T) {
	body := BuildBody(entity.SanitizedRequest{Facility: "F", RecordDate: "d", Note: "line 1\n\nline 3"})

	assert.True(t, strings.HasSuffix(body.HTML, "<p>line 1</p><p>&nbsp;</p><p>line 3</p>"))
	assert.Equal(t, 8, strings.Count(body.HTML, "<p>"))
}

func TestBuildBody_EscapesHTMLOnce(t *testing.T) {
	note := `a & b < c > d " e ' f`
	body := BuildBody(entity.SanitizedRequest{Facility: "<F&Co>", RecordID: "1", Note: note})

	assert.Contains(t, body.Text, note)
	assert.Contains(t, body.Text, "施設名: <F&Co>")

	assert.Contains(t, body.HTML, "<p>a &amp; b &lt; c &gt; d &quot; e &#39; f</p>")
	assert.Contains(t, body.HTML, "<p>施設名: &lt;F&amp;Co&gt;</p>")
	assert.NotContains(t, body.HTML, "&amp;amp;")
	assert.NotContains(t, body.HTML, "&amp;lt;")
}

func TestBuildSubject(t *testing.T) {
	assert.Equal(t, "【削除依頼】Clinic A", BuildSubject(entity.SanitizedRequest{Facility: "Clinic A"}))
	assert.Equal(t, "【削除依頼】<F&Co>", BuildSubject(entity.SanitizedRequest{Facility: "<F&Co>"}))
}
