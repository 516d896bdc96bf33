// Package prover generates zero-knowledge proofs that ledger balance
// moves respected the transfer guards. Proofs use Groth16 over BN254,
// Ethereum's alt_bn128, so they remain verifiable by standard on-chain
// verifiers should the host need that.
package prover

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

// ErrAmountTooWide is returned when a value does not fit the circuit's
// amount range.
var ErrAmountTooWide = errors.New("prover: amount exceeds circuit range")

// Prover manages circuit compilation, setup, and proof generation.
type Prover struct {
	mu       sync.RWMutex
	circuits map[string]*CompiledCircuit
	curve    ecc.ID
}

// CompiledCircuit holds a compiled circuit and its keys.
type CompiledCircuit struct {
	Name         string
	CS           constraint.ConstraintSystem
	ProvingKey   groth16.ProvingKey
	VerifyingKey groth16.VerifyingKey
	Constraints  int
}

// ProofResult contains a generated proof and its public inputs.
type ProofResult struct {
	// Proof is the serialized Groth16 proof.
	Proof []byte `json:"proof"`

	// PublicInputs holds the public witness values as 0x-prefixed hex,
	// in declaration order.
	PublicInputs []string `json:"public_inputs"`

	// Metadata
	CircuitName string `json:"circuit_name"`
	Constraints int    `json:"constraints"`
}

// NewProver creates a prover over BN254.
func NewProver() *Prover {
	return &Prover{
		circuits: make(map[string]*CompiledCircuit),
		curve:    ecc.BN254,
	}
}

// RegisterCircuit compiles a circuit and runs trusted setup.
// In production the setup would come from a ceremony; the local setup
// here suffices for host-side verification.
func (p *Prover) RegisterCircuit(name string, circuit frontend.Circuit) error {
	cs, err := frontend.Compile(p.curve.ScalarField(), r1cs.NewBuilder, circuit)
	if err != nil {
		return fmt.Errorf("prover: circuit compilation failed: %w", err)
	}

	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return fmt.Errorf("prover: setup failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.circuits[name] = &CompiledCircuit{
		Name:         name,
		CS:           cs,
		ProvingKey:   pk,
		VerifyingKey: vk,
		Constraints:  cs.GetNbConstraints(),
	}
	return nil
}

// ListCircuits returns all registered circuit names.
func (p *Prover) ListCircuits() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	names := make([]string, 0, len(p.circuits))
	for name := range p.circuits {
		names = append(names, name)
	}
	return names
}

func (p *Prover) circuit(name string) (*CompiledCircuit, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	cc, ok := p.circuits[name]
	if !ok {
		return nil, fmt.Errorf("prover: circuit %q not registered", name)
	}
	return cc, nil
}

// Prove generates a proof for the given circuit and assignment.
func (p *Prover) Prove(circuitName string, assignment frontend.Circuit) (*ProofResult, error) {
	cc, err := p.circuit(circuitName)
	if err != nil {
		return nil, err
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("prover: witness creation failed: %w", err)
	}

	proof, err := groth16.Prove(cc.CS, cc.ProvingKey, w)
	if err != nil {
		return nil, fmt.Errorf("prover: proof generation failed: %w", err)
	}

	public, err := w.Public()
	if err != nil {
		return nil, fmt.Errorf("prover: public witness extraction failed: %w", err)
	}

	return buildResult(proof, public, cc)
}

// Verify proves and verifies an assignment against a registered
// circuit, reporting whether the assignment satisfies it.
func (p *Prover) Verify(circuitName string, assignment frontend.Circuit) error {
	cc, err := p.circuit(circuitName)
	if err != nil {
		return err
	}

	w, err := frontend.NewWitness(assignment, p.curve.ScalarField())
	if err != nil {
		return fmt.Errorf("prover: witness creation failed: %w", err)
	}

	proof, err := groth16.Prove(cc.CS, cc.ProvingKey, w)
	if err != nil {
		return fmt.Errorf("prover: proof generation failed: %w", err)
	}

	public, err := w.Public()
	if err != nil {
		return fmt.Errorf("prover: public witness extraction failed: %w", err)
	}

	return groth16.Verify(proof, cc.VerifyingKey, public)
}

// buildResult serializes the proof and decodes the public inputs.
func buildResult(proof groth16.Proof, public witness.Witness, cc *CompiledCircuit) (*ProofResult, error) {
	result := &ProofResult{
		CircuitName: cc.Name,
		Constraints: cc.Constraints,
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("prover: marshal proof: %w", err)
	}
	result.Proof = buf.Bytes()

	// Public witness layout: 12-byte header (curve ID, public count,
	// secret count), then 32 bytes per BN254 element.
	pubBytes, err := public.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("prover: marshal public witness: %w", err)
	}
	const headerSize = 12
	const elementSize = 32
	if len(pubBytes) >= headerSize {
		data := pubBytes[headerSize:]
		n := len(data) / elementSize
		result.PublicInputs = make([]string, n)
		for i := 0; i < n; i++ {
			val := new(big.Int).SetBytes(data[i*elementSize : (i+1)*elementSize])
			result.PublicInputs[i] = fmt.Sprintf("0x%064x", val)
		}
	}

	return result, nil
}
