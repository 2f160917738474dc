package swagger

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwaggerInfo_Routes(t *testing.T) {
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))

	routes := map[string]string{
		"/integrity":               "get",
		"/integrity/schema":        "get",
		"/integrity/reference":     "get",
		"/integrity/archive":       "get",
		"/inventory/{userId}":      "get",
		"/inventory/{userId}/sync": "post",
	}
	assert.Len(t, doc.Paths, len(routes))
	for path, method := range routes {
		require.Contains(t, doc.Paths, path)
		assert.Contains(t, doc.Paths[path], method, path)
	}
}
