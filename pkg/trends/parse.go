package trends

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// The widget API prefixes every JSON body with an anti-hijacking sequence
// such as ")]}'\n" or ")]}',\n". Parsing starts at the first brace.

type exploreSession struct {
	geo        string
	timeseries widget
	related    []widget
}

type widget struct {
	keyword string
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

func stripPrefix(body []byte) ([]byte, error) {
	idx := bytes.IndexByte(body, '{')
	if idx < 0 {
		return nil, fmt.Errorf("no JSON object in response body")
	}
	return body[idx:], nil
}

// parseExplore extracts the timeseries widget and the per-keyword related
// query widgets. Related widgets arrive in keyword order, matching the
// order of the comparison items in the request.
func parseExplore(body []byte, payload Payload) (*exploreSession, error) {
	data, err := stripPrefix(body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Widgets []widget `json:"widgets"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("explore response: %w", err)
	}

	session := &exploreSession{geo: payload.Geo}
	for _, w := range parsed.Widgets {
		switch w.ID {
		case "TIMESERIES":
			session.timeseries = w
		case "RELATED_QUERIES":
			if i := len(session.related); i < len(payload.Keywords) {
				w.keyword = payload.Keywords[i]
				session.related = append(session.related, w)
			}
		}
	}
	if session.timeseries.Token == "" {
		return nil, fmt.Errorf("explore response carries no timeseries widget")
	}
	return session, nil
}

// parseTimeline converts a multiline widget body into a RawSeries. Buckets
// with fewer values than keywords are padded with zeros.
func parseTimeline(body []byte, kws []string) (*RawSeries, error) {
	data, err := stripPrefix(body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Default struct {
			TimelineData []struct {
				Time      string    `json:"time"`
				Value     []float64 `json:"value"`
				IsPartial bool      `json:"isPartial"`
			} `json:"timelineData"`
		} `json:"default"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("timeline response: %w", err)
	}

	series := &RawSeries{Keywords: kws}
	for _, bucket := range parsed.Default.TimelineData {
		values := make([]float64, len(kws))
		copy(values, bucket.Value)

		point := Point{Values: values, Partial: bucket.IsPartial}
		if secs, err := strconv.ParseInt(bucket.Time, 10, 64); err == nil {
			point.Time = time.Unix(secs, 0).UTC()
		}
		series.Points = append(series.Points, point)
	}
	return series, nil
}

// parseRisingQueries extracts the rising ranked list (second list; the
// first is "top") capped at 10 entries.
func parseRisingQueries(body []byte) ([]RelatedQuery, error) {
	data, err := stripPrefix(body)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Default struct {
			RankedList []struct {
				RankedKeyword []RelatedQuery `json:"rankedKeyword"`
			} `json:"rankedList"`
		} `json:"default"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("related queries response: %w", err)
	}

	if len(parsed.Default.RankedList) < 2 {
		return nil, nil
	}
	rising := parsed.Default.RankedList[1].RankedKeyword
	if len(rising) > 10 {
		rising = rising[:10]
	}
	return rising, nil
}
