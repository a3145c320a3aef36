package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
)

func TestWaitlistJoinIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	added, err := env.waitlist.Join(ctx, " Early@Example.com ")
	if err != nil || !added {
		t.Fatalf("first join: added=%v err=%v", added, err)
	}
	added, err = env.waitlist.Join(ctx, "early@example.com")
	if err != nil || added {
		t.Fatalf("second join: added=%v err=%v", added, err)
	}
	if _, err := env.waitlist.Join(ctx, "nope"); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("bad email: want validation got=%v", err)
	}
}

func TestContactSendsEscapedEmail(t *testing.T) {
	env := newTestEnv(t)
	err := env.contact.Send(context.Background(), ContactInput{
		Name:        "Mal <script>",
		Email:       "mal@example.com",
		Phone:       "555 0100",
		CountryCode: "+1",
		Message:     "Please <b>call</b> me back soon.",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(env.mailer.sent) != 1 {
		t.Fatalf("sent: want=1 got=%d", len(env.mailer.sent))
	}
	req := env.mailer.sent[0]
	if req.To[0].Email != "team@careerpath.test" || req.ReplyTo == nil || req.ReplyTo.Email != "mal@example.com" {
		t.Fatalf("addressing: %+v", req)
	}
	if strings.Contains(req.HTML, "<script>") || !strings.Contains(req.HTML, "&lt;b&gt;call&lt;/b&gt;") {
		t.Fatalf("html not escaped: %s", req.HTML)
	}
	if !strings.Contains(req.Text, "+1 555 0100") {
		t.Fatalf("phone missing: %s", req.Text)
	}
}

func TestContactValidation(t *testing.T) {
	env := newTestEnv(t)
	cases := []ContactInput{
		{Name: "", Email: "a@b.co", Message: "long enough message"},
		{Name: "A", Email: "bad", Message: "long enough message"},
		{Name: "A", Email: "a@b.co", Message: "short"},
		{Name: "A", Email: "a@b.co", Message: strings.Repeat("x", 501)},
	}
	for i, in := range cases {
		if err := env.contact.Send(context.Background(), in); !apierr.IsCode(err, apierr.CodeValidation) {
			t.Fatalf("case %d: want validation got=%v", i, err)
		}
	}
	if len(env.mailer.sent) != 0 {
		t.Fatalf("invalid input reached the mailer")
	}
}

func TestContactDeliveryFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.err = errors.New("sendgrid 500")
	err := env.contact.Send(context.Background(), ContactInput{Name: "A", Email: "a@b.co", Message: "a message of some length"})
	if !apierr.IsCode(err, apierr.CodeDeliveryFailed) {
		t.Fatalf("want delivery_failed got=%v", err)
	}
}
