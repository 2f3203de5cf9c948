package memory_test

import (
	"testing"

	"github.com/aretw0/polezero/pkg/adapters/memory"
	"github.com/aretw0/polezero/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunDraftStoreContract(t, store)
}

func TestMemorySource_Contract(t *testing.T) {
	ports.RunConfigSourceContract(t, memory.NewSource(""))
}
