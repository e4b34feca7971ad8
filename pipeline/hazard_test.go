package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pipesim/isa"
	"github.com/sarchlab/pipesim/pipeline"
)

var _ = Describe("HazardDetector", func() {
	var (
		detector *pipeline.HazardDetector
		sb       *pipeline.Scoreboard
		units    *pipeline.ExecutionUnits
		stats    pipeline.Statistics
		slot     *pipeline.Slot
	)

	BeforeEach(func() {
		detector = pipeline.NewHazardDetector()
		sb = pipeline.NewScoreboard()
		units = pipeline.NewExecutionUnits(map[isa.ExecUnit]int{isa.ALU: 2, isa.FPU: 1})
		stats = pipeline.Statistics{}
		slot = pipeline.NewSlot()
	})

	It("clears a slot with no RAW or structural hazard", func() {
		inst, err := isa.New(1, isa.ADD, 2, 3, 1, false, 0, "ADD R1 R2 R3")
		Expect(err).NotTo(HaveOccurred())

		ok := detector.Check(inst, slot, sb, units, 10, &stats)

		Expect(ok).To(BeTrue())
		Expect(slot.Stalled).To(BeFalse())
		Expect(stats.RAWHazards).To(Equal(0))
		Expect(stats.StructuralHazards).To(Equal(0))
		Expect(stats.TotalStalls).To(Equal(0))
	})

	It("reports a RAW hazard on src1 before checking src2 or structural", func() {
		sb.MarkBusy(2, 1, 50)
		inst, err := isa.New(2, isa.ADD, 2, 3, 1, false, 0, "ADD R1 R2 R3")
		Expect(err).NotTo(HaveOccurred())

		ok := detector.Check(inst, slot, sb, units, 10, &stats)

		Expect(ok).To(BeFalse())
		Expect(slot.Stalled).To(BeTrue())
		Expect(slot.StallReason).To(ContainSubstring("RAW on R2"))
		Expect(stats.RAWHazards).To(Equal(1))
		Expect(stats.TotalStalls).To(Equal(1))
	})

	It("reports a RAW hazard on src2 when src1 is clear", func() {
		sb.MarkBusy(3, 5, 50)
		inst, err := isa.New(2, isa.ADD, 2, 3, 1, false, 0, "ADD R1 R2 R3")
		Expect(err).NotTo(HaveOccurred())

		ok := detector.Check(inst, slot, sb, units, 10, &stats)

		Expect(ok).To(BeFalse())
		Expect(slot.StallReason).To(ContainSubstring("RAW on R3"))
		Expect(stats.RAWHazards).To(Equal(1))
	})

	It("reports a structural hazard only when no RAW hazard is present", func() {
		Expect(units.Allocate(isa.FPU)).To(BeTrue())
		inst, err := isa.New(2, isa.FADD, 4, 5, 6, false, 0, "FADD R6 R4 R5")
		Expect(err).NotTo(HaveOccurred())

		ok := detector.Check(inst, slot, sb, units, 10, &stats)

		Expect(ok).To(BeFalse())
		Expect(slot.StallReason).To(ContainSubstring("Structural"))
		Expect(slot.StallReason).To(ContainSubstring("FPU"))
		Expect(stats.StructuralHazards).To(Equal(1))
		Expect(stats.RAWHazards).To(Equal(0))
	})

	It("never treats NOP's Any unit as structurally unavailable", func() {
		inst, err := isa.New(1, isa.NOP, isa.NoReg, isa.NoReg, isa.NoReg, false, 0, "NOP")
		Expect(err).NotTo(HaveOccurred())

		ok := detector.Check(inst, slot, sb, units, 10, &stats)

		Expect(ok).To(BeTrue())
		Expect(stats.StructuralHazards).To(Equal(0))
	})

	It("clears the stall flag once the hazard resolves", func() {
		sb.MarkBusy(2, 1, 11)
		inst, err := isa.New(2, isa.ADD, 2, 3, 1, false, 0, "ADD R1 R2 R3")
		Expect(err).NotTo(HaveOccurred())

		Expect(detector.Check(inst, slot, sb, units, 10, &stats)).To(BeFalse())
		Expect(slot.Stalled).To(BeTrue())

		ok := detector.Check(inst, slot, sb, units, 11, &stats)

		Expect(ok).To(BeTrue())
		Expect(slot.Stalled).To(BeFalse())
		Expect(slot.StallReason).To(Equal(""))
	})
})
