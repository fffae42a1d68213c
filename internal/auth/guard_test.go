package auth

import (
	"errors"
	"testing"

	apperrors "github.com/SAP-F-2025/assessment-engine/internal/errors"
	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard_CanMutate(t *testing.T) {
	guard := NewGuard(nil)

	tests := []struct {
		name      string
		principal Principal
		resource  string
		ownerID   string
		expected  bool
	}{
		{
			name:      "owner may mutate",
			principal: Principal{ID: "t1", Role: models.RoleTeacher},
			resource:  ResourceQuestionBank,
			ownerID:   "t1",
			expected:  true,
		},
		{
			name:      "other teacher denied",
			principal: Principal{ID: "t2", Role: models.RoleTeacher},
			resource:  ResourceQuestionBank,
			ownerID:   "t1",
			expected:  false,
		},
		{
			name:      "institute owner acting for employed teacher",
			principal: Principal{ID: "io", Role: models.RoleInstituteOwner, ActsFor: []string{"t1"}},
			resource:  ResourceQuiz,
			ownerID:   "t1",
			expected:  true,
		},
		{
			name:      "institute owner for teacher it does not employ",
			principal: Principal{ID: "io", Role: models.RoleInstituteOwner, ActsFor: []string{"t9"}},
			resource:  ResourceQuiz,
			ownerID:   "t1",
			expected:  false,
		},
		{
			name:      "institute owner not privileged for attempts",
			principal: Principal{ID: "io", Role: models.RoleInstituteOwner, ActsFor: []string{"s1"}},
			resource:  ResourceAttempt,
			ownerID:   "s1",
			expected:  false,
		},
		{
			name:      "admin wildcard",
			principal: Principal{ID: "root", Role: models.RoleAdmin},
			resource:  ResourceAttempt,
			ownerID:   "anyone",
			expected:  true,
		},
		{
			name:      "student acts_for ignored without privilege",
			principal: Principal{ID: "s1", Role: models.RoleStudent, ActsFor: []string{"t1"}},
			resource:  ResourceQuestionBank,
			ownerID:   "t1",
			expected:  false,
		},
		{
			name:      "anonymous principal denied",
			principal: Principal{},
			resource:  ResourceQuestionBank,
			ownerID:   "",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, guard.CanMutate(tt.principal, tt.resource, tt.ownerID))
		})
	}
}

func TestGuard_AuthorizeReturnsForbidden(t *testing.T) {
	guard := NewGuard(nil)

	err := guard.Authorize(Principal{ID: "t2", Role: models.RoleTeacher}, ResourceQuestionBank, "add_question", 7, "t1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	var permErr *apperrors.PermissionError
	require.True(t, errors.As(err, &permErr))
	assert.Equal(t, uint(7), permErr.ResourceID)
	assert.Equal(t, "add_question", permErr.Action)

	assert.NoError(t, guard.Authorize(Principal{ID: "t1", Role: models.RoleTeacher}, ResourceQuestionBank, "add_question", 7, "t1"))
}

func TestGuard_InjectedPolicy(t *testing.T) {
	secretaryPolicy := PolicyFunc(func(role models.UserRole, resource string) bool {
		return role == models.RoleSecretary && resource == ResourceClass
	})
	guard := NewGuard(secretaryPolicy)

	secretary := Principal{ID: "sec", Role: models.RoleSecretary, ActsFor: []string{"t1"}}
	assert.True(t, guard.CanMutate(secretary, ResourceClass, "t1"))
	assert.False(t, guard.CanMutate(secretary, ResourceQuiz, "t1"))
}

func TestRolePolicy_WildcardSuffix(t *testing.T) {
	policy := NewRolePolicy(map[models.UserRole][]string{
		models.RoleConsultant: {"question*"},
	})

	assert.True(t, policy.Privileged(models.RoleConsultant, ResourceQuestionBank))
	assert.False(t, policy.Privileged(models.RoleConsultant, ResourceQuiz))
	assert.False(t, policy.Privileged(models.RoleTeacher, ResourceQuiz))
}
