package notify

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestSanitizeNumber(t *testing.T) {
	assert.Equal(t, "573001234567", SanitizeNumber("+57 (300) 123-4567"))
	assert.Equal(t, "", SanitizeNumber(" - "))
}

func TestWhatsAppSinkBuildsLink(t *testing.T) {
	sink := NewWhatsAppSink()
	text := "*NEW ORDER - Store*\n\n*Order:* #WEB-1\nTotal & more"

	uri, err := sink.Send(context.Background(), "+57 300-123 4567", text)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(uri, "https://wa.me/573001234567?text="))
	assert.NotContains(t, uri, "+", "spaces are percent-encoded")

	u, err := url.Parse(uri)
	require.NoError(t, err)
	assert.Equal(t, text, u.Query().Get("text"))
}

func TestWhatsAppSinkNeedsNumber(t *testing.T) {
	_, err := NewWhatsAppSink().Send(context.Background(), "", "hi")
	assert.ErrorIs(t, err, ErrNoDestination)
}

func TestWhatsAppSinkHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewWhatsAppSink().Send(ctx, "123", "hi")
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestEmailSink(t *testing.T) {
	d := &recordingDialer{}
	sink := NewEmailSink(EmailConfig{From: "shop@example.com", Subject: "New order"}).WithDialer(d)

	uri, err := sink.Send(context.Background(), "owner@example.com", "*Order:* #WEB-9\nbody")
	require.NoError(t, err)
	assert.Equal(t, "mailto:owner@example.com", uri)
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"New order #WEB-9"}, d.sent[0].GetHeader("Subject"))
	assert.Equal(t, []string{"owner@example.com"}, d.sent[0].GetHeader("To"))
}

func TestEmailSinkErrors(t *testing.T) {
	d := &recordingDialer{err: errors.New("smtp down")}
	sink := NewEmailSink(EmailConfig{}).WithDialer(d)

	_, err := sink.Send(context.Background(), "", "x")
	assert.Error(t, err)

	_, err = sink.Send(context.Background(), "owner@example.com", "x")
	assert.ErrorContains(t, err, "smtp down")
}
