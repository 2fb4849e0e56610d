package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
	"github.com/tidwall/gjson"

	"arrangio/internal/partition"
	"arrangio/internal/render"
	"arrangio/internal/setlist"
)

// Request limits. The search visits up to groups^songs complete
// partitions when durations are distinct, so a request must fit
// maxRequestLeaves as well as the plain caps.
const (
	maxRequestSongs  = 20
	maxRequestGroups = 16
	maxRequestLeaves = 1 << 18
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type lambdaHandler func(context.Context, events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error)

// newHandler serves arrangement requests on a Lambda function URL. The body
// has the shape of a JSON setlist:
//
//	{"groups": 2, "songs": ["song01:3m24s", {"label": "song02", "seconds": 241}]}
//
// groups defaults to 2. The response is the JSON document of the result.
func newHandler(solver *partition.Solver, logger *slog.Logger) lambdaHandler {
	return func(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
		body := event.Body
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return errResp(400, "invalid base64 body")
			}
			body = string(decoded)
		}

		if !gjson.Valid(body) {
			return errResp(400, "invalid JSON")
		}
		sl, err := setlist.FromGJSON(gjson.Parse(body))
		if err != nil {
			return errResp(400, err.Error())
		}
		if len(sl.Items) == 0 {
			return errResp(400, "missing songs")
		}
		if len(sl.Items) > maxRequestSongs {
			return errResp(400, fmt.Sprintf("too many songs: %d (max %d)", len(sl.Items), maxRequestSongs))
		}
		groups := sl.Groups
		if groups == 0 {
			groups = DefaultConfig().Groups
		}
		if groups > maxRequestGroups {
			return errResp(400, fmt.Sprintf("too many groups: %d (max %d)", groups, maxRequestGroups))
		}
		if !withinSearchBudget(groups, len(sl.Items)) {
			return errResp(400, fmt.Sprintf("search too large: %d songs in %d groups (at most %d arrangements)",
				len(sl.Items), groups, maxRequestLeaves))
		}

		result, stats, err := solver.Run(ctx, sl.Items, groups)
		switch {
		case errors.Is(err, partition.ErrInvalidConfiguration):
			return errResp(400, err.Error())
		case err != nil:
			logger.Error("arrangement failed", "error", err)
			return errResp(500, "arrangement failed")
		}
		logger.Info("arrangement complete",
			"songs", len(sl.Items), "groups", groups,
			"difference", result.Difference, "elapsed", stats.Elapsed)

		respJSON, err := json.Marshal(render.NewDocument(result))
		if err != nil {
			return errResp(500, "encode response")
		}
		return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
	}
}

// withinSearchBudget reports whether groups^songs <= maxRequestLeaves.
func withinSearchBudget(groups, songs int) bool {
	leaves := int64(1)
	for range songs {
		leaves *= int64(groups)
		if leaves > maxRequestLeaves {
			return false
		}
	}
	return true
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}
