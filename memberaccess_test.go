package ccgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberAccessValidator_SelfScopeReferenceRejected(t *testing.T) {
	symbols := NewScopeTables()
	symbols.Scopes["Drivetrain"] = &ScopeInfo{Name: "Drivetrain", Members: map[string]Visibility{"MAX_SPEED": VisibilityPublic}}
	v := NewMemberAccessValidator(symbols)

	err := v.ValidateScopeMember("Drivetrain", "MAX_SPEED", "Drivetrain", Span{})
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, ScopeError, diag.Kind)
}

func TestMemberAccessValidator_PrivateMemberFromOutsideRejected(t *testing.T) {
	symbols := NewScopeTables()
	symbols.Scopes["Drivetrain"] = &ScopeInfo{Name: "Drivetrain", Members: map[string]Visibility{"calibration": VisibilityPrivate}}
	v := NewMemberAccessValidator(symbols)

	err := v.ValidateScopeMember("Drivetrain", "calibration", "Dashboard", Span{})
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, AccessError, diag.Kind)
}

func TestMemberAccessValidator_PrivateMemberFromInsideByNameRejected(t *testing.T) {
	symbols := NewScopeTables()
	symbols.Scopes["Drivetrain"] = &ScopeInfo{Name: "Drivetrain", Members: map[string]Visibility{"calibration": VisibilityPrivate}}
	v := NewMemberAccessValidator(symbols)

	// Naming the own scope is rejected even for a private member; the
	// access has to go through `this.calibration`.
	err := v.ValidateScopeMember("Drivetrain", "calibration", "Drivetrain", Span{})
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, ScopeError, diag.Kind)
	assert.Contains(t, diag.Message, "this.calibration")
}

func TestMemberSeparatorResolver_ScopeSeparatorByDialect(t *testing.T) {
	c := NewMemberSeparatorResolver(NewModeDispatcher(false))
	assert.Equal(t, "Drivetrain_MAX_SPEED", c.Render("Drivetrain", "MAX_SPEED", TargetScope))

	cpp := NewMemberSeparatorResolver(NewModeDispatcher(true))
	assert.Equal(t, "Drivetrain::MAX_SPEED", cpp.Render("Drivetrain", "MAX_SPEED", TargetScope))
}

func TestMemberSeparatorResolver_StructSeparatorByPointerness(t *testing.T) {
	r := NewMemberSeparatorResolver(NewModeDispatcher(false))
	assert.Equal(t, "m.speed", r.Render("m", "speed", TargetStructInstance))
	assert.Equal(t, "m->speed", r.Render("m", "speed", TargetStructPointer))
}

func TestMemberAccessValidator_RegisterWriteToReadOnlyRejected(t *testing.T) {
	symbols := NewScopeTables()
	symbols.Registers["GPIO"] = &RegisterInfo{Name: "GPIO", Fields: map[string]RegisterField{
		"STATUS": {Name: "STATUS", Access: AccessReadOnly},
	}}
	v := NewMemberAccessValidator(symbols)
	err := v.ValidateRegisterField("GPIO", "STATUS", true, Span{})
	require.Error(t, err)
	var diag *Diagnostic
	require.ErrorAs(t, err, &diag)
	assert.Equal(t, AccessError, diag.Kind)
}
