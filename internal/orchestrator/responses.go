package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"parkassist/internal/models"
)

var greetings = []string{
	"Hello! I can help you find parking anywhere in the UK. Where are you headed?",
	"Hi there! Tell me where you need to park and I'll find you some options.",
	"Hello! Ask me something like \"parking near Oxford Street for 2 hours\".",
}

var locationPrompts = []string{
	"Where would you like to park? Give me a street, station or town, e.g. \"near Victoria Station\".",
	"I can find parking for you — where are you headed?",
}

// ukTips is a rotating pool of practical UK parking notes appended to
// result messages.
var ukTips = []string{
	"Tip: double yellow lines mean no parking at any time.",
	"Tip: many councils use RingGo, so check the zone number on nearby signs.",
	"Tip: on-street bays are often free after 18:30 and on Sundays, but always check the plate.",
	"Tip: Blue Badge holders can usually park on single yellow lines for up to 3 hours.",
	"Tip: multi-storey car parks often have height limits around 2 metres.",
}

var resultSuggestions = []string{
	"Show only free parking",
	"I need EV charging",
	"Covered parking please",
	"Parking for 4 hours",
}

var greetingSuggestions = []string{
	"Parking near Oxford Street",
	"Free parking in Manchester",
	"EV charging car park near Leeds station",
}

func (o *Orchestrator) greetingResponse(message string) *models.ChatResponse {
	text := o.rng.Pick(greetings)
	return &models.ChatResponse{
		Message:     message,
		Response:    text,
		Suggestions: greetingSuggestions,
		Status:      models.StatusSuccess,
		Timestamp:   time.Now().UTC(),
	}
}

func (o *Orchestrator) promptForLocation(message string) *models.ChatResponse {
	return &models.ChatResponse{
		Message:     message,
		Response:    o.rng.Pick(locationPrompts),
		Suggestions: greetingSuggestions,
		Status:      models.StatusSuccess,
		Timestamp:   time.Now().UTC(),
	}
}

func (o *Orchestrator) resultsResponse(message, location string, listings []models.ScoredListing, isMock bool) *models.ChatResponse {
	var b strings.Builder

	if isMock {
		fmt.Fprintf(&b, "I couldn't reach live parking data just now, so here are typical options around %s:\n\n", location)
	} else {
		fmt.Fprintf(&b, "Here are the best parking options near %s:\n\n", location)
	}

	for i, l := range listings {
		fmt.Fprintf(&b, "%d. %s (%dm away", i+1, l.Title, l.Distance)
		if l.Detail != nil {
			if l.Detail.Free {
				b.WriteString(", free")
			} else if l.Detail.HourlyRate > 0 {
				fmt.Fprintf(&b, ", £%.2f/hr", l.Detail.HourlyRate)
			}
		}
		b.WriteString(")\n")
	}

	if len(listings) > 0 && listings[0].Address != "" {
		fmt.Fprintf(&b, "\nTop pick: %s — %s\n", listings[0].Title, listings[0].Address)
	}

	b.WriteString("\n")
	b.WriteString(o.rng.Pick(ukTips))

	status := models.StatusSuccess
	if isMock {
		status = models.StatusPartial
	}

	return &models.ChatResponse{
		Message:  message,
		Response: b.String(),
		Data: &models.ChatData{
			Location: location,
			Listings: listings,
			IsMock:   isMock,
		},
		Suggestions: resultSuggestions,
		Status:      status,
		Timestamp:   time.Now().UTC(),
	}
}

// errorResponse carries the panic detail only when debug mode is on; callers
// in production see a fixed friendly message.
func errorResponse(message, detail string, debug bool) *models.ChatResponse {
	text := "Sorry, something went wrong on my side. Please try that again."
	if debug && detail != "" {
		text += " (debug: " + detail + ")"
	}
	return &models.ChatResponse{
		Message:   message,
		Response:  text,
		Status:    models.StatusError,
		Timestamp: time.Now().UTC(),
	}
}
