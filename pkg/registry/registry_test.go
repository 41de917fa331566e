package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/dkoosis/chunnel/pkg/contract"
)

func testContract(name, version string) *contract.Contract {
	return &contract.Contract{
		Interface: contract.InterfaceSignature{Name: name},
		Version:   version,
	}
}

func TestPutContract_Overwrite(t *testing.T) {
	r := New(nil)

	if _, overwrote := r.PutContract(testContract("CarService", "v1")); overwrote {
		t.Error("first insertion should not report an overwrite")
	}
	prev, overwrote := r.PutContract(testContract("CarService", "v2"))
	if !overwrote {
		t.Fatal("second insertion should report an overwrite")
	}
	if prev != "v1" {
		t.Errorf("expected previous version v1, got %s", prev)
	}

	snap := r.Snapshot()
	if len(snap.Interfaces) != 1 || snap.Interfaces[0].Contract.Version != "v2" {
		t.Error("last writer should win")
	}
}

func TestSnapshot_SortedAndImmutable(t *testing.T) {
	r := New(nil)
	r.PutContract(testContract("Zebra", "v1"))
	r.PutContract(testContract("Alpha", "v1"))
	r.AddExpectation(contract.Expectation{Interface: "Mid", Method: "m", Test: "T1"})

	snap := r.Snapshot()
	names := []string{snap.Interfaces[0].Name, snap.Interfaces[1].Name, snap.Interfaces[2].Name}
	want := []string{"Alpha", "Mid", "Zebra"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("snapshot order = %v, want %v", names, want)
		}
	}

	// Writes after the snapshot must not leak into it.
	r.AddExpectation(contract.Expectation{Interface: "Mid", Method: "m", Test: "T2"})
	for _, st := range snap.Interfaces {
		if st.Name == "Mid" && len(st.Expectations) != 1 {
			t.Errorf("snapshot mutated by later write: %d expectations", len(st.Expectations))
		}
	}
}

func TestExpectationOrderPreserved(t *testing.T) {
	r := New(nil)
	for i := 0; i < 5; i++ {
		r.AddExpectation(contract.Expectation{Interface: "A", Method: "m", Test: fmt.Sprintf("T%d", i)})
	}
	snap := r.Snapshot()
	for i, e := range snap.Interfaces[0].Expectations {
		if e.Test != fmt.Sprintf("T%d", i) {
			t.Fatalf("expectation %d out of order: %s", i, e.Test)
		}
	}
}

func TestConcurrentWrites(t *testing.T) {
	r := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			r.PutContract(testContract(fmt.Sprintf("Iface%d", i), "v1"))
		}(i)
		go func(i int) {
			defer wg.Done()
			r.AddExpectation(contract.Expectation{Interface: fmt.Sprintf("Iface%d", i), Method: "m", Test: "T"})
		}(i)
	}
	wg.Wait()

	snap := r.Snapshot()
	if len(snap.Interfaces) != 8 {
		t.Errorf("expected 8 interfaces, got %d", len(snap.Interfaces))
	}
	if snap.ExpectationCount() != 8 {
		t.Errorf("expected 8 expectations, got %d", snap.ExpectationCount())
	}
}

func TestUnexercised(t *testing.T) {
	r := New(nil)
	r.PutContract(testContract("Used", "v1"))
	r.PutContract(testContract("Unused", "v1"))
	r.AddExpectation(contract.Expectation{Interface: "Used", Method: "m", Test: "T"})
	// An interface with only expectations is missing a contract, not unexercised.
	r.AddExpectation(contract.Expectation{Interface: "Ghost", Method: "m", Test: "T"})

	got := r.Snapshot().Unexercised()
	if len(got) != 1 || got[0] != "Unused" {
		t.Errorf("unexercised = %v, want [Unused]", got)
	}
}
