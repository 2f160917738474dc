package fio

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupHubFixture = `{
  "CXWarehouses": [
    {
      "WarehouseLocationName": "Antares Station Warehouse",
      "WarehouseLocationNaturalId": "ANT",
      "PlayerCXWarehouses": [
        {
          "PlayerName": "Trader",
          "StorageType": "WAREHOUSE_STORE",
          "Items": [{"MaterialTicker": "RAT", "MaterialName": "rations", "Units": 120}],
          "LastUpdated": "2026-03-01T10:15:00.123456"
        }
      ]
    }
  ],
  "PlayerModels": [
    {
      "UserName": "TRADER",
      "Locations": [
        {
          "LocationIdentifier": "UV-351a",
          "LocationName": "Katoa",
          "BaseStorage": {
            "StorageType": "STORE",
            "Items": [{"MaterialTicker": null, "Units": 0}, {"MaterialTicker": "DW", "Units": 40}],
            "LastUpdated": "2026-03-01T09:00:00Z"
          },
          "WarehouseStorage": null
        }
      ]
    }
  ],
  "Failures": []
}`

func TestClient_GroupHub(t *testing.T) {
	var gotBody []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, groupHubPath, r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("Authorization"))
		assert.Equal(t, "kawa-test", r.Header.Get("User-Agent"))
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(groupHubFixture))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL + "/", TimeoutSeconds: 2, UserAgent: "kawa-test"})
	hub, err := client.GroupHub(context.Background(), "secret-key", "Trader")
	require.NoError(t, err)

	assert.Equal(t, []string{"Trader"}, gotBody)
	require.Len(t, hub.CXWarehouses, 1)
	require.Len(t, hub.PlayerModels, 1)

	wh := hub.CXWarehouses[0].PlayerCXWarehouses[0]
	assert.Equal(t, "RAT", wh.Items[0].MaterialTicker)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 15, 0, 123456000, time.UTC), wh.LastUpdated.Time)

	loc := hub.PlayerModels[0].Locations[0]
	assert.Nil(t, loc.WarehouseStorage)
	assert.Equal(t, "", loc.BaseStorage.Items[0].MaterialTicker)
	assert.Equal(t, 40, loc.BaseStorage.Items[1].Units)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), *loc.BaseStorage.LastUpdated.Ptr())
}

func TestClient_GroupHubErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "Unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrUnauthorized)
			},
		},
		{
			name:   "Server error",
			status: http.StatusBadGateway,
			body:   "upstream down",
			check: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusBadGateway, se.StatusCode)
				assert.Equal(t, "upstream down", se.Body)
			},
		},
		{
			name:   "Malformed body",
			status: http.StatusOK,
			body:   `{"PlayerModels": [`,
			check: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "decode group hub")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			hub, err := NewClient(Config{BaseURL: srv.URL}).GroupHub(context.Background(), "k", "Trader")
			assert.Nil(t, hub)
			tt.check(t, err)
		})
	}
}

func TestTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    *time.Time
		wantErr bool
	}{
		{"Null", `null`, nil, false},
		{"Empty", `""`, nil, false},
		{"Zoned", `"2026-03-01T09:00:00+02:00"`, ptr(time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC)), false},
		{"Zoneless", `"2026-03-01T09:00:00"`, ptr(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)), false},
		{"Garbage", `"yesterday"`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ts.Ptr())
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }

func TestGroupHub_Failed(t *testing.T) {
	hub := &GroupHub{Failures: []string{" Trader "}}
	assert.True(t, hub.Failed("trader"))
	assert.True(t, hub.Failed("TRADER"))
	assert.False(t, hub.Failed("someone"))

	var missing *GroupHub
	assert.False(t, missing.Failed("trader"))
	assert.False(t, (&GroupHub{}).Failed("trader"))
}
