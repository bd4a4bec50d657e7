package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_RenderAll(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	cases := map[string]map[string]any{
		TemplateEmailValidation: {"FullName": "Jane Doe", "RecordTitle": "Doc", "ConfirmURL": "https://x/confirm", "ValidDays": 5},
		TemplateNewRequest:      {"FullName": "Jane Doe", "Email": "j@y", "RecordTitle": "Doc", "Justification": "please", "RequestURL": "https://x/r/1"},
		TemplateRequestReceived: {"FullName": "Jane Doe", "RecordTitle": "Doc"},
		TemplateRequestAccepted: {"FullName": "Jane Doe", "RecordTitle": "Doc", "Message": "ok", "LinkURL": "https://x/records/1?token=t", "ExpiresAt": ""},
		TemplateRequestRejected: {"FullName": "Jane Doe", "RecordTitle": "Doc", "Message": "insufficient justification"},
		TemplateLinkDescription: {"FullName": "Jane Doe", "Email": "j@y", "Justification": "please"},
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := templates.Render(name, data)
			require.NoError(t, err)
			assert.NotEmpty(t, out)
		})
	}
}

func TestTemplates_Content(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	out, err := templates.Render(TemplateLinkDescription, map[string]any{"FullName": "Jane Doe", "Email": "j@y", "Justification": ""})
	require.NoError(t, err)
	assert.Equal(t, "Access granted to Jane Doe (j@y) following an access request.", out)

	out, err = templates.Render(TemplateRequestRejected, map[string]any{"FullName": "Jane", "RecordTitle": "Doc", "Message": "insufficient justification"})
	require.NoError(t, err)
	assert.Contains(t, out, "insufficient justification")
}

func TestTemplates_Errors(t *testing.T) {
	templates, err := NewTemplates()
	require.NoError(t, err)

	_, err = templates.Render("unknown", nil)
	assert.Error(t, err)

	_, err = templates.Render(TemplateRequestReceived, map[string]any{"FullName": "Jane"})
	assert.Error(t, err)
}
