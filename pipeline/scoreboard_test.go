package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/isa"
	"github.com/sarchlab/pipesim/pipeline"
)

var _ = Describe("Scoreboard", func() {
	var sb *pipeline.Scoreboard

	BeforeEach(func() {
		sb = pipeline.NewScoreboard()
	})

	It("starts with every register free", func() {
		for r := 0; r < isa.NREG; r++ {
			Expect(sb.IsBusy(r, 0)).To(BeFalse())
			Expect(sb.WriterOf(r)).To(Equal(-1))
		}
	})

	It("treats an out-of-range register as never busy", func() {
		Expect(sb.IsBusy(isa.NoReg, 10)).To(BeFalse())
		Expect(sb.IsBusy(isa.NREG, 10)).To(BeFalse())
		Expect(sb.WriterOf(isa.NoReg)).To(Equal(-1))
	})

	It("marks a register busy until its ready cycle, strictly", func() {
		sb.MarkBusy(3, 7, 10)

		Expect(sb.IsBusy(3, 9)).To(BeTrue())
		Expect(sb.WriterOf(3)).To(Equal(7))

		Expect(sb.IsBusy(3, 10)).To(BeFalse(), "a write is visible on its own ready cycle")
		Expect(sb.IsBusy(3, 11)).To(BeFalse())
	})

	It("clears a busy register immediately regardless of ready cycle", func() {
		sb.MarkBusy(5, 1, 100)
		sb.ClearBusy(5)

		Expect(sb.IsBusy(5, 2)).To(BeFalse())
	})

	It("lets a later MarkBusy overwrite an earlier reservation", func() {
		sb.MarkBusy(2, 1, 5)
		sb.MarkBusy(2, 9, 20)

		Expect(sb.WriterOf(2)).To(Equal(9))
		Expect(sb.IsBusy(2, 6)).To(BeTrue())
	})

	It("ignores MarkBusy/ClearBusy for an out-of-range register", func() {
		Expect(func() { sb.MarkBusy(isa.NoReg, 1, 5) }).NotTo(Panic())
		Expect(func() { sb.ClearBusy(isa.NREG + 1) }).NotTo(Panic())
	})
})
