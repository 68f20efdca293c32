package provider

import (
	"errors"
	"testing"
	"watchdash/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecords(t *testing.T) {
	mapper := status.NewMapper()
	tests := []struct {
		name        string
		line        string
		wantBuild   status.Status
		wantDeploy  status.Status
		wantSkipped bool
	}{
		{"canonical fields", `{"commit":"a","message":"m","build_status":"success","deploy_status":"deploying"}`, status.Live, status.Deploying, false},
		{"raw provider code", `{"id":"a","title":"m","status":"build_failed"}`, status.Failed, status.Pending, false},
		{"generic failure with phase", `{"id":"a","status":"failed","phase":"update"}`, status.Live, status.Failed, false},
		{"raw code in build_status", `{"id":"a","build_status":"build_in_progress"}`, status.Building, status.Pending, false},
		{"unknown raw code", `{"id":"a","status":"exotic"}`, status.Unknown, status.Unknown, false},
		{"missing id", `{"message":"m","status":"live"}`, 0, 0, true},
		{"missing status", `{"commit":"a"}`, 0, 0, true},
		{"not json", `commit=a`, 0, 0, true},
		{"finish before start", `{"commit":"a","status":"live","started_at":200,"finished_at":100}`, 0, 0, true},
		{"bad timestamp", `{"commit":"a","status":"live","started_at":"yesterday"}`, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, skipped := ParseRecords([]byte(tt.line+"\n"), status.ProviderRender, mapper)
			if tt.wantSkipped {
				assert.Empty(t, records)
				require.Len(t, skipped, 1)
				assert.True(t, errors.Is(skipped[0], ErrMalformedRecord))
				return
			}
			require.Empty(t, skipped)
			require.Len(t, records, 1)
			assert.Equal(t, tt.wantBuild, records[0].Build)
			assert.Equal(t, tt.wantDeploy, records[0].Deploy)
		})
	}
}

func TestParseRecords_PluginFileName(t *testing.T) {
	mapper := status.NewMapper()
	for _, name := range []string{"render.py", "renderdotcom.py"} {
		t.Run(name, func(t *testing.T) {
			records, skipped := ParseRecords([]byte(`{"commit":"a","status":"build_in_progress"}`+"\n"), name, mapper)
			require.Empty(t, skipped)
			require.Len(t, records, 1)
			assert.Equal(t, status.Building, records[0].Build)
			assert.Equal(t, status.Pending, records[0].Deploy)
		})
	}
}

func TestParseRecords_KeepsOrderAndAliases(t *testing.T) {
	out := []byte(`
{"commit":"c1","message":"first\nsecond line","tag":"v1.2","author":"ana","service_url":"https://a","build_started":1700000000.5}

{"id":"c2","title":"other","branch":"main","url":"https://b","started_at":"2024-01-02T03:04:05Z","status":"live"}
`)
	records, skipped := ParseRecords(out, status.ProviderRender, status.NewMapper())
	assert.Len(t, skipped, 1, "first line has no status")
	require.Len(t, records, 1)
	assert.Equal(t, "c2", records[0].ID)
	assert.Equal(t, "main", records[0].Ref)
	assert.Equal(t, "https://b", records[0].URL)
	assert.Equal(t, 2024, records[0].StartedAt.Year())

	out = []byte(`{"commit":"c1","message":"first\nsecond line","tag":"v1.2","status":"live","build_started":1700000000.5}` + "\n" +
		`{"commit":"c0","message":"older","status":"canceled"}`)
	records, skipped = ParseRecords(out, status.ProviderRender, status.NewMapper())
	assert.Empty(t, skipped)
	require.Len(t, records, 2)
	assert.Equal(t, "c1", records[0].ID)
	assert.Equal(t, "first", records[0].Title)
	assert.Equal(t, "v1.2", records[0].Ref)
	assert.Equal(t, int64(1700000000), records[0].StartedAt.Unix())
	assert.Equal(t, status.Cancelled, records[1].Deploy)
}
