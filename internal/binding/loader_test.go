package binding

import (
	"errors"
	"testing"

	"github.com/ayusman/mudra/trackapi"
)

func TestLoaderLoad(t *testing.T) {
	t.Run("missing module path", func(t *testing.T) {
		host := NewMockHost()
		loader := NewLoader(host, trackapi.HandSymbols)

		err := loader.Load("/nonexistent/hand_tracking.so")
		if !errors.Is(err, ErrModuleNotFound) {
			t.Errorf("Expected ErrModuleNotFound, got %v", err)
		}
		if loader.State() != StateUnloaded {
			t.Errorf("Expected StateUnloaded after failed load, got %v", loader.State())
		}
	})

	t.Run("successful load", func(t *testing.T) {
		host := NewMockHost()
		host.Register("hand.so", NewMockHandModule())
		loader := NewLoader(host, trackapi.HandSymbols)

		if err := loader.Load("hand.so"); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loader.State() != StateLoaded {
			t.Errorf("Expected StateLoaded, got %v", loader.State())
		}
		if loader.Path() != "hand.so" {
			t.Errorf("Expected path hand.so, got %s", loader.Path())
		}
	})

	t.Run("double load rejected", func(t *testing.T) {
		host := NewMockHost()
		host.Register("hand.so", NewMockHandModule())
		loader := NewLoader(host, trackapi.HandSymbols)

		if err := loader.Load("hand.so"); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := loader.Load("hand.so"); !errors.Is(err, ErrAlreadyLoaded) {
			t.Errorf("Expected ErrAlreadyLoaded, got %v", err)
		}
	})
}

func TestLoaderResolveAll(t *testing.T) {
	t.Run("resolves full export set", func(t *testing.T) {
		host := NewMockHost()
		host.Register("hand.so", NewMockHandModule())
		loader := NewLoader(host, trackapi.HandSymbols)

		if err := loader.Load("hand.so"); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := loader.ResolveAll(); err != nil {
			t.Fatalf("ResolveAll failed: %v", err)
		}
		if loader.State() != StateResolved {
			t.Errorf("Expected StateResolved, got %v", loader.State())
		}
	})

	t.Run("before load", func(t *testing.T) {
		loader := NewLoader(NewMockHost(), trackapi.HandSymbols)

		if err := loader.ResolveAll(); !errors.Is(err, ErrNotLoaded) {
			t.Errorf("Expected ErrNotLoaded, got %v", err)
		}
	})

	t.Run("missing symbol names the export", func(t *testing.T) {
		module := NewMockHandModule()
		module.RemoveSymbol(trackapi.SymHandDetectFrame)
		host := NewMockHost()
		host.Register("hand.so", module)
		loader := NewLoader(host, trackapi.HandSymbols)

		if err := loader.Load("hand.so"); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		err := loader.ResolveAll()
		if !errors.Is(err, ErrSymbolNotFound) {
			t.Fatalf("Expected ErrSymbolNotFound, got %v", err)
		}

		var symErr *SymbolError
		if !errors.As(err, &symErr) {
			t.Fatalf("Expected SymbolError, got %T", err)
		}
		if symErr.Name != trackapi.SymHandDetectFrame {
			t.Errorf("Expected missing symbol %s, got %s", trackapi.SymHandDetectFrame, symErr.Name)
		}

		// A failed resolution leaves no usable symbol table behind.
		if loader.State() != StateLoaded {
			t.Errorf("Expected StateLoaded after failed resolve, got %v", loader.State())
		}
		if _, err := loader.symbol(trackapi.SymHandInit); !errors.Is(err, ErrNotResolved) {
			t.Errorf("Expected ErrNotResolved for symbol access, got %v", err)
		}
	})
}

func TestLoaderUnload(t *testing.T) {
	t.Run("unload drops the symbol table", func(t *testing.T) {
		host := NewMockHost()
		host.Register("hand.so", NewMockHandModule())
		loader := NewLoader(host, trackapi.HandSymbols)

		if err := loader.Load("hand.so"); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := loader.ResolveAll(); err != nil {
			t.Fatalf("ResolveAll failed: %v", err)
		}
		if err := loader.Unload(); err != nil {
			t.Fatalf("Unload failed: %v", err)
		}

		if loader.State() != StateUnloaded {
			t.Errorf("Expected StateUnloaded, got %v", loader.State())
		}
		if _, err := loader.symbol(trackapi.SymHandInit); !errors.Is(err, ErrNotResolved) {
			t.Errorf("Expected ErrNotResolved after unload, got %v", err)
		}
	})

	t.Run("unload without load", func(t *testing.T) {
		loader := NewLoader(NewMockHost(), trackapi.HandSymbols)

		if err := loader.Unload(); !errors.Is(err, ErrNotLoaded) {
			t.Errorf("Expected ErrNotLoaded, got %v", err)
		}
	})

	t.Run("reload after unload", func(t *testing.T) {
		host := NewMockHost()
		host.Register("hand.so", NewMockHandModule())
		loader := NewLoader(host, trackapi.HandSymbols)

		for round := 0; round < 2; round++ {
			if err := loader.Load("hand.so"); err != nil {
				t.Fatalf("Load round %d failed: %v", round, err)
			}
			if err := loader.ResolveAll(); err != nil {
				t.Fatalf("ResolveAll round %d failed: %v", round, err)
			}
			if err := loader.Unload(); err != nil {
				t.Fatalf("Unload round %d failed: %v", round, err)
			}
		}
	})
}

func TestSymbolAs(t *testing.T) {
	t.Run("wrong symbol type", func(t *testing.T) {
		module := NewMockHandModule()
		module.SetSymbol(trackapi.SymHandInit, func(n int) bool { return true })
		host := NewMockHost()
		host.Register("hand.so", module)
		loader := NewLoader(host, trackapi.HandSymbols)

		if err := loader.Load("hand.so"); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := loader.ResolveAll(); err != nil {
			t.Fatalf("ResolveAll failed: %v", err)
		}

		_, err := symbolAs[func(string) bool](loader, trackapi.SymHandInit)
		if !errors.Is(err, ErrUnexpectedSymbolType) {
			t.Errorf("Expected ErrUnexpectedSymbolType, got %v", err)
		}

		var symErr *SymbolError
		if !errors.As(err, &symErr) {
			t.Fatalf("Expected SymbolError, got %T", err)
		}
		if symErr.Name != trackapi.SymHandInit {
			t.Errorf("Expected symbol %s in error, got %s", trackapi.SymHandInit, symErr.Name)
		}
	})

	t.Run("matching symbol type", func(t *testing.T) {
		host := NewMockHost()
		host.Register("hand.so", NewMockHandModule())
		loader := NewLoader(host, trackapi.HandSymbols)

		if err := loader.Load("hand.so"); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if err := loader.ResolveAll(); err != nil {
			t.Fatalf("ResolveAll failed: %v", err)
		}

		fn, err := symbolAs[func(string) bool](loader, trackapi.SymHandInit)
		if err != nil {
			t.Fatalf("symbolAs failed: %v", err)
		}
		if fn == nil {
			t.Error("Expected a callable symbol")
		}
	})
}
