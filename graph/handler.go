package graph

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"trendline/utils"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphqlError struct {
	Message    string                 `json:"message"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

type graphqlResponse struct {
	Data   interface{}    `json:"data,omitempty"`
	Errors []graphqlError `json:"errors,omitempty"`
}

// Handler serves POST /graphql over schema
func Handler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graphqlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequest(c, "Invalid GraphQL request", err.Error())
			return
		}
		if req.Query == "" {
			utils.BadRequest(c, "Invalid GraphQL request", "query must not be empty")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Request.Context(),
		})

		resp := graphqlResponse{Data: result.Data}
		for _, gqlErr := range result.Errors {
			extensions := map[string]interface{}{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			}
			for k, v := range gqlErr.Extensions {
				extensions[k] = v
			}
			resp.Errors = append(resp.Errors, graphqlError{
				Message:    gqlErr.Message,
				Extensions: extensions,
			})
		}
		if len(resp.Errors) > 0 {
			utils.LogDebug("graphql request finished with %d errors", len(resp.Errors))
		}

		// GraphQL transports errors in-band; HTTP stays 200
		c.JSON(http.StatusOK, resp)
	}
}
