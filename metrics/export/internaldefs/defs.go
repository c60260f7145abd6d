package internaldefs

import (
	"github.com/riceharvest/ironsession"
)

// CounterDef maps one ironsession counter to its exported name and help text.
type CounterDef struct {
	ID   ironsession.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: ironsession.MetricDecodeOK, Name: "ironsession_decode_ok_total", Help: "Inbound cookies that verified within TTL."},
	{ID: ironsession.MetricDecodeAbsent, Name: "ironsession_decode_absent_total", Help: "Requests carrying no session cookie."},
	{ID: ironsession.MetricDecodeInvalid, Name: "ironsession_decode_invalid_total", Help: "Cookies rejected by every candidate secret."},
	{ID: ironsession.MetricDecodeExpired, Name: "ironsession_decode_expired_total", Help: "Cookies whose envelope outlived the TTL."},
	{ID: ironsession.MetricDecodeLegacy, Name: "ironsession_decode_legacy_total", Help: "Cookies accepted through legacy-format tolerance."},
	{ID: ironsession.MetricSave, Name: "ironsession_save_total", Help: "Successful session saves."},
	{ID: ironsession.MetricSaveRejectedSent, Name: "ironsession_save_rejected_sent_total", Help: "Saves refused because the response was already sent."},
	{ID: ironsession.MetricSaveRejectedSize, Name: "ironsession_save_rejected_size_total", Help: "Saves refused by the cookie size bound."},
	{ID: ironsession.MetricDestroy, Name: "ironsession_destroy_total", Help: "Session destroy operations."},
	{ID: ironsession.MetricSealFailure, Name: "ironsession_seal_failure_total", Help: "Failures of the sealing primitive."},
}

// AuditDroppedDef names the audit drop counter exported alongside the
// operation counters.
var AuditDroppedDef = CounterDef{
	Name: "ironsession_audit_dropped_total",
	Help: "Audit events dropped because the dispatch buffer was full.",
}
