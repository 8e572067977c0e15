package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentType_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		docType DocumentType
		want    bool
	}{
		{"soil", DocumentTypeSoil, true},
		{"crop", DocumentTypeCrop, true},
		{"scheme", DocumentTypeScheme, true},
		{"unknown", DocumentType("weather"), false},
		{"empty", DocumentType(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.docType.IsValid())
		})
	}
}

func TestDocument_Ref(t *testing.T) {
	assert.Equal(t, "Soil: alluvial", Document{Type: DocumentTypeSoil, Category: "alluvial"}.Ref())
	assert.Equal(t, "Crop: rice", Document{Type: DocumentTypeCrop, Category: "rice"}.Ref())
	assert.Equal(t, "Scheme: pm_kisan", Document{Type: DocumentTypeScheme, Category: "pm_kisan"}.Ref())
	assert.Equal(t, "misc", Document{Type: DocumentType("other"), Category: "misc"}.Ref())
}
