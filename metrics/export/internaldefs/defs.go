package internaldefs

import (
	loomclient "github.com/loomlane/loomclient"
)

// CounterDef defines a public type used by loomclient APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   loomclient.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the storefront client.
var CounterDefs = []CounterDef{
	{ID: loomclient.MetricLoginSuccess, Name: "loomclient_login_success_total", Help: "Successful login attempts."},
	{ID: loomclient.MetricLoginFailure, Name: "loomclient_login_failure_total", Help: "Failed login attempts."},
	{ID: loomclient.MetricRegisterSuccess, Name: "loomclient_register_success_total", Help: "Successful account registrations."},
	{ID: loomclient.MetricRegisterFailure, Name: "loomclient_register_failure_total", Help: "Failed account registrations."},
	{ID: loomclient.MetricLogout, Name: "loomclient_logout_total", Help: "Logout operations."},
	{ID: loomclient.MetricProfileRefreshSuccess, Name: "loomclient_profile_refresh_success_total", Help: "Successful profile refreshes."},
	{ID: loomclient.MetricProfileRefreshFailure, Name: "loomclient_profile_refresh_failure_total", Help: "Failed profile refreshes."},
	{ID: loomclient.MetricProfileUpdateSuccess, Name: "loomclient_profile_update_success_total", Help: "Successful profile updates."},
	{ID: loomclient.MetricProfileUpdateFailure, Name: "loomclient_profile_update_failure_total", Help: "Failed profile updates."},
	{ID: loomclient.MetricPasswordChangeSuccess, Name: "loomclient_password_change_success_total", Help: "Successful password changes."},
	{ID: loomclient.MetricPasswordChangeFailure, Name: "loomclient_password_change_failure_total", Help: "Failed password changes."},
	{ID: loomclient.MetricSessionCleared, Name: "loomclient_session_cleared_total", Help: "Session slots cleared."},
	{ID: loomclient.MetricDedupeCoalesced, Name: "loomclient_dedupe_coalesced_total", Help: "Requests coalesced onto an identical in-flight request."},
	{ID: loomclient.MetricUploadMismatch, Name: "loomclient_upload_mismatch_total", Help: "Image uploads acknowledged with a mismatched URL count."},
	{ID: loomclient.MetricRecoveryRequest, Name: "loomclient_recovery_request_total", Help: "Recovery codes requested."},
	{ID: loomclient.MetricRecoveryVerifySuccess, Name: "loomclient_recovery_verify_success_total", Help: "Successful recovery code verifications."},
	{ID: loomclient.MetricRecoveryVerifyFailure, Name: "loomclient_recovery_verify_failure_total", Help: "Failed recovery code verifications."},
	{ID: loomclient.MetricRecoveryConfirmSuccess, Name: "loomclient_recovery_confirm_success_total", Help: "Successful recovery password confirmations."},
	{ID: loomclient.MetricRecoveryConfirmFailure, Name: "loomclient_recovery_confirm_failure_total", Help: "Failed recovery password confirmations."},
}
