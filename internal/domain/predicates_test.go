package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/melodic-software/medley/internal/domain"
)

// fakeResolver resolves a fixed table of fully qualified names.
type fakeResolver map[string]domain.SymbolID

func (r fakeResolver) ResolveWellKnown(fqn string) (domain.SymbolID, bool) {
	sym, ok := r[fqn]
	return sym, ok
}

func TestImplementsInterface(t *testing.T) {
	td := domain.TypeDescriptor{
		Name: "UserStore",
		Interfaces: []domain.TypeRef{
			{Name: "UserRepository", Namespace: "Users.Domain"},
		},
	}
	assert.True(t, domain.ImplementsInterface(td, "UserRepository"))
	assert.False(t, domain.ImplementsInterface(td, "OrderRepository"))
}

func TestImplementsInterface_GenericOrigin(t *testing.T) {
	td := domain.TypeDescriptor{
		Interfaces: []domain.TypeRef{
			{Name: "Handler", GenericOrigin: "RequestHandler", TypeArgs: []domain.TypeRef{{Name: "CreateUser"}}},
		},
	}
	assert.True(t, domain.ImplementsInterface(td, "RequestHandler"))
}

func TestImplementsInterfaceWithPattern(t *testing.T) {
	td := domain.TypeDescriptor{
		Interfaces: []domain.TypeRef{
			{Name: "IRepositoryOfUsers"},
			{Name: "OrderRepository"},
		},
	}
	assert.True(t, domain.ImplementsInterfaceWithPattern(td, "IRepository", ""))
	assert.True(t, domain.ImplementsInterfaceWithPattern(td, "", "Repository"))
	assert.False(t, domain.ImplementsInterfaceWithPattern(td, "IValidator", ""))
	// Both constraints must hold on the same interface name.
	assert.False(t, domain.ImplementsInterfaceWithPattern(td, "IRepository", "Repository"))
}

func TestInheritsFrom(t *testing.T) {
	td := domain.TypeDescriptor{
		BaseChain: []domain.TypeRef{
			{Name: "AuditedEntity"},
			{Name: "Pending", GenericOrigin: "Specification"},
		},
	}
	assert.True(t, domain.InheritsFrom(td, "AuditedEntity"))
	assert.True(t, domain.InheritsFrom(td, "Specification"))
	assert.False(t, domain.InheritsFrom(td, "Entity"))
}

func TestInheritsFromWellKnown_ComparesBySymbol(t *testing.T) {
	resolver := fakeResolver{
		"Validation.AbstractValidator": "sym-validator",
	}
	inherits := domain.TypeDescriptor{
		BaseChain: []domain.TypeRef{{Name: "AbstractValidator", Symbol: "sym-validator"}},
	}
	impostor := domain.TypeDescriptor{
		// Same simple name, different declaration.
		BaseChain: []domain.TypeRef{{Name: "AbstractValidator", Symbol: "sym-other"}},
	}
	assert.True(t, domain.InheritsFromWellKnown(inherits, resolver, "Validation.AbstractValidator"))
	assert.False(t, domain.InheritsFromWellKnown(impostor, resolver, "Validation.AbstractValidator"))
}

func TestInheritsFromWellKnown_UnresolvableIsFalse(t *testing.T) {
	td := domain.TypeDescriptor{
		BaseChain: []domain.TypeRef{{Name: "AbstractValidator", Symbol: "sym-validator"}},
	}
	assert.False(t, domain.InheritsFromWellKnown(td, fakeResolver{}, "Validation.AbstractValidator"))
}

func TestImplementsWellKnownInterface(t *testing.T) {
	resolver := fakeResolver{
		"Messaging.RequestHandler": "sym-handler",
	}
	td := domain.TypeDescriptor{
		Interfaces: []domain.TypeRef{
			{Name: "RequestHandler", GenericOrigin: "RequestHandler", Symbol: "sym-handler"},
		},
	}
	assert.True(t, domain.ImplementsWellKnownInterface(td, resolver, "Messaging.RequestHandler"))
	assert.False(t, domain.ImplementsWellKnownInterface(td, resolver, "Messaging.Other"))
}
