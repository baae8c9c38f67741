package redirector_test

import (
	"net/http"
	"testing"

	"github.com/ingrid-storage/storage-locator/pkg/redirector"
	"github.com/stretchr/testify/require"
)

func TestClassifyMethod(t *testing.T) {
	for method, expected := range map[string]struct {
		class      redirector.OperationClass
		statusCode int
	}{
		"OPTIONS":  {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
		"HEAD":     {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
		"PROPFIND": {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
		"MKCOL":    {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
		"DELETE":   {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
		"COPY":     {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
		"PUT":      {redirector.OperationClassData, http.StatusTemporaryRedirect},
		"GET":      {redirector.OperationClassData, http.StatusFound},
		"MOVE":     {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
		"PATCH":    {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
		"get":      {redirector.OperationClassMetadata, http.StatusTemporaryRedirect},
	} {
		t.Run(method, func(t *testing.T) {
			class, statusCode := redirector.ClassifyMethod(method)
			require.Equal(t, expected.class, class)
			require.Equal(t, expected.statusCode, statusCode)
		})
	}
}

func TestOperationClassString(t *testing.T) {
	require.Equal(t, "Metadata", redirector.OperationClassMetadata.String())
	require.Equal(t, "Data", redirector.OperationClassData.String())
}
