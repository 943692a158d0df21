// Package schemas embeds the JSON Schemas of the documents exchanged by the dashboard.
package schemas

import _ "embed"

// DashboardResponseFile is the file name of the GET /api/data schema
const DashboardResponseFile = "dashboard_response.schema.json"

// DashboardResponse is the JSON Schema of the GET /api/data body
//
//go:embed dashboard_response.schema.json
var DashboardResponse []byte
