package game

import (
	"testing"
	"time"

	"github.com/ncruces/zenity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/circular-rule/internal/rule"
	"github.com/iburimskiy/circular-rule/internal/slide"
)

func waitResult(t *testing.T, p *prompter) promptResult {
	t.Helper()
	var r promptResult
	require.Eventually(t, func() bool {
		var ok bool
		r, ok = p.poll()
		return ok
	}, time.Second, time.Millisecond)
	return r
}

func TestAskFieldDeliversEntry(t *testing.T) {
	release := make(chan struct{})
	p := newPrompter()
	p.entry = func(string, ...zenity.Option) (string, error) {
		<-release
		return "42", nil
	}

	require.True(t, p.askField(slide.FieldProduct, "1"))
	assert.True(t, p.open())
	assert.False(t, p.askField(slide.FieldTop, "1"), "one dialog at a time")
	assert.False(t, p.askMode(rule.Multiply))

	_, ok := p.poll()
	assert.False(t, ok)

	close(release)
	r := waitResult(t, p)
	assert.Equal(t, slide.FieldProduct, r.field)
	assert.Equal(t, "42", r.text)
	assert.False(t, r.isMode)
	assert.NoError(t, r.err)
	assert.False(t, p.open())
}

func TestAskFieldCanceled(t *testing.T) {
	p := newPrompter()
	p.entry = func(string, ...zenity.Option) (string, error) {
		return "", zenity.ErrCanceled
	}
	require.True(t, p.askField(slide.FieldTop, "1"))
	r := waitResult(t, p)
	assert.ErrorIs(t, r.err, zenity.ErrCanceled)
}

func TestAskMode(t *testing.T) {
	for _, tc := range []struct {
		choice  string
		want    rule.Mode
		wantErr bool
	}{
		{choice: "divide", want: rule.Divide},
		{choice: "multiply", want: rule.Multiply},
		{choice: "modulo", wantErr: true},
	} {
		t.Run(tc.choice, func(t *testing.T) {
			p := newPrompter()
			p.list = func(_ string, items []string, _ ...zenity.Option) (string, error) {
				assert.Equal(t, []string{"multiply", "divide"}, items)
				return tc.choice, nil
			}
			require.True(t, p.askMode(rule.Multiply))
			r := waitResult(t, p)
			assert.True(t, r.isMode)
			if tc.wantErr {
				assert.Error(t, r.err)
				return
			}
			require.NoError(t, r.err)
			assert.Equal(t, tc.want, r.mode)
		})
	}
}
