package sqlinline

import (
	"strings"
	"testing"

	"wrapstudio/internal/infra"
)

var statements = map[string]string{
	"QSwatchListAll":          QSwatchListAll,
	"QSwatchUpsert":           QSwatchUpsert,
	"QTemplatePanelsListAll":  QTemplatePanelsListAll,
	"QTemplatePanelUpsert":    QTemplatePanelUpsert,
	"QRenderInsert":           QRenderInsert,
	"QRenderGetByID":          QRenderGetByID,
	"QRenderClaimNext":        QRenderClaimNext,
	"QRenderUpdateStatus":     QRenderUpdateStatus,
	"QRenderAssetInsert":      QRenderAssetInsert,
	"QRenderAssetsList":       QRenderAssetsList,
	"QIntegrationTokenGet":    QIntegrationTokenGet,
	"QIntegrationTokenUpsert": QIntegrationTokenUpsert,
}

func TestStatementsCarryUniqueMarkers(t *testing.T) {
	seen := map[string]string{}
	for name, q := range statements {
		marker, body, err := infra.ExtractMarker(q)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if strings.TrimSpace(body) == "" {
			t.Fatalf("%s: empty body", name)
		}
		if other, dup := seen[marker]; dup {
			t.Fatalf("%s reuses the marker of %s", name, other)
		}
		seen[marker] = name
	}
}

func TestClaimSkipsLockedRows(t *testing.T) {
	if !strings.Contains(QRenderClaimNext, "for update skip locked") {
		t.Fatal("claim must skip rows locked by other workers")
	}
}
