package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := Register(reg); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}

	ApplicationsTotal.WithLabelValues("accepted").Inc()
	MessagesSentTotal.Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{"jobboard_applications_total", "jobboard_messages_sent_total"} {
		if !names[want] {
			t.Errorf("metric %s not gathered; got %v", want, names)
		}
	}
}
