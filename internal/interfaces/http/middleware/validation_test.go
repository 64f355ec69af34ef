package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator_JSONFieldNames(t *testing.T) {
	SetupValidator()

	type payload struct {
		DisplayName string `json:"display_name" binding:"required"`
	}

	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var p payload
		err := c.ShouldBindJSON(&p)
		require.Error(t, err)

		verr := FormatBindingError(err)
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "display_name", verr.Fields[0].Field)
		assert.Equal(t, "This field is required", verr.Fields[0].Message)
		c.Status(http.StatusBadRequest)
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
}

func TestSetupValidator_UnitTypeTag(t *testing.T) {
	SetupValidator()

	type payload struct {
		UnitType string `json:"unit_type" binding:"required,unittype"`
	}

	cases := []struct {
		name  string
		body  string
		valid bool
	}{
		{"known unit", `{"unit_type": "bottle"}`, true},
		{"unknown unit", `{"unit_type": "hogshead"}`, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := gin.New()
			router.POST("/test", func(c *gin.Context) {
				var p payload
				err := c.ShouldBindJSON(&p)
				if tc.valid {
					assert.NoError(t, err)
				} else {
					require.Error(t, err)
					verr := FormatBindingError(err)
					require.Len(t, verr.Fields, 1)
					assert.Equal(t, "Unknown unit type", verr.Fields[0].Message)
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
		})
	}
}

func TestFormatBindingError_NonValidatorError(t *testing.T) {
	verr := FormatBindingError(assert.AnError)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "", verr.Fields[0].Field)
}
