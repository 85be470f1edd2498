//
// Copyright (C) 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package llrp

// This file covers the C1G2 air protocol parameters:
// inventory control (filters, singulation), access operations,
// and the per-operation results that come back in tag reports.

// C1G2InventoryCommand configures how a Reader singulates C1G2 tags
// within an AntennaConfiguration.
type C1G2InventoryCommand struct {
	TagInventoryStateAware bool
	Filters                []C1G2Filter
	RFControl              *C1G2RFControl
	SingulationControl     *C1G2SingulationControl
	Custom                 []Custom
	Unknowns               []UnknownParameter
}

func (ic C1G2InventoryCommand) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2InventoryCommand, func() {
		b.bool1(ic.TagInventoryStateAware)
		for _, f := range ic.Filters {
			f.encodeTo(b)
		}
		if ic.RFControl != nil {
			ic.RFControl.encodeTo(b)
		}
		if ic.SingulationControl != nil {
			ic.SingulationControl.encodeTo(b)
		}
		for _, u := range ic.Unknowns {
			u.encodeTo(b)
		}
		for _, c := range ic.Custom {
			c.encodeTo(b)
		}
	})
}

func (ic *C1G2InventoryCommand) decode(r *pReader, ph paramHeader) {
	ic.TagInventoryStateAware = r.bool1()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamC1G2Filter:
			var f C1G2Filter
			f.decode(r, sub)
			ic.Filters = append(ic.Filters, f)
		case ParamC1G2RFControl:
			ic.RFControl = &C1G2RFControl{}
			ic.RFControl.decode(r, sub)
		case ParamC1G2SingulationControl:
			ic.SingulationControl = &C1G2SingulationControl{}
			ic.SingulationControl.decode(r, sub)
		case ParamCustom:
			var c Custom
			c.decode(r, sub)
			ic.Custom = append(ic.Custom, c)
		default:
			if sub.tv {
				r.skip(sub)
			} else {
				ic.Unknowns = append(ic.Unknowns, r.unknown(sub))
			}
		}
	}
}

// C1G2FilterTruncateAction controls Select truncation.
// Many Readers only accept Unspecified or DoNotTruncate.
type C1G2FilterTruncateAction uint8

const (
	FilterActionUnspecified   = C1G2FilterTruncateAction(0)
	FilterActionDoNotTruncate = C1G2FilterTruncateAction(1)
	FilterActionTruncate      = C1G2FilterTruncateAction(2)
)

// C1G2Filter describes a Select command the Reader issues before inventory.
// Exactly one of AwareFilterAction or UnawareFilterAction should be set,
// matching the enclosing command's TagInventoryStateAware flag.
type C1G2Filter struct {
	TruncateAction      C1G2FilterTruncateAction
	TagInventoryMask    C1G2TagInventoryMask
	AwareFilterAction   *C1G2TagInventoryStateAwareFilterAction
	UnawareFilterAction *C1G2TagInventoryStateUnawareFilterAction
}

func (f C1G2Filter) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2Filter, func() {
		b.u8(uint8(f.TruncateAction&0x3) << 6)
		f.TagInventoryMask.encodeTo(b)
		if f.AwareFilterAction != nil {
			f.AwareFilterAction.encodeTo(b)
		}
		if f.UnawareFilterAction != nil {
			f.UnawareFilterAction.encodeTo(b)
		}
	})
}

func (f *C1G2Filter) decode(r *pReader, ph paramHeader) {
	f.TruncateAction = C1G2FilterTruncateAction(r.u8() >> 6)
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		switch sub.typ {
		case ParamC1G2TagInventoryMask:
			f.TagInventoryMask.decode(r, sub)
		case ParamC1G2AwareFilterAction:
			f.AwareFilterAction = &C1G2TagInventoryStateAwareFilterAction{}
			f.AwareFilterAction.decode(r, sub)
		case ParamC1G2UnawareFilterAction:
			f.UnawareFilterAction = new(C1G2TagInventoryStateUnawareFilterAction)
			f.UnawareFilterAction.decode(r, sub)
		default:
			r.skip(sub)
		}
	}
}

// C1G2TagInventoryMask selects tags by matching TagMask against memory
// starting at a bit Pointer within MemoryBank.
type C1G2TagInventoryMask struct {
	MemoryBank     uint8 // 2-bit field
	Pointer        uint16
	TagMaskNumBits uint16
	TagMask        []byte
}

func (m C1G2TagInventoryMask) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2TagInventoryMask, func() {
		b.u8(m.MemoryBank & 0x3 << 6)
		b.u16(m.Pointer)
		b.u16(m.TagMaskNumBits)
		b.raw(m.TagMask)
	})
}

func (m *C1G2TagInventoryMask) decode(r *pReader, ph paramHeader) {
	m.MemoryBank = r.u8() >> 6
	m.Pointer = r.u16()
	m.TagMaskNumBits = r.u16()
	m.TagMask = r.raw(bitsToBytes(m.TagMaskNumBits))
	r.endParam(ph)
}

func bitsToBytes(bits uint16) int {
	return (int(bits) + 7) / 8
}

// C1G2TagInventoryStateAwareFilterAction applies when the Reader supports
// state-aware inventory: Target names the flag a Select modifies,
// and Action the standard C1G2 action (0-7) for matching/non-matching tags.
type C1G2TagInventoryStateAwareFilterAction struct {
	Target InventoryStateTarget
	Action uint8
}

type InventoryStateTarget uint8

const (
	TargetSelected      = InventoryStateTarget(0)
	TargetInventoriedS0 = InventoryStateTarget(1)
	TargetInventoriedS1 = InventoryStateTarget(2)
	TargetInventoriedS2 = InventoryStateTarget(3)
	TargetInventoriedS3 = InventoryStateTarget(4)
)

func (a C1G2TagInventoryStateAwareFilterAction) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2AwareFilterAction, func() {
		b.u8(uint8(a.Target))
		b.u8(a.Action)
	})
}

func (a *C1G2TagInventoryStateAwareFilterAction) decode(r *pReader, ph paramHeader) {
	a.Target = InventoryStateTarget(r.u8())
	a.Action = r.u8()
	r.endParam(ph)
}

// C1G2TagInventoryStateUnawareFilterAction applies when state-aware
// inventory is unavailable. The names read "what happens to Matching
// tags, what happens to Unmatched tags": Select asserts SL, Clear
// deasserts it, Keep leaves it alone.
type C1G2TagInventoryStateUnawareFilterAction uint8

const (
	UnawareSelectMClearU = C1G2TagInventoryStateUnawareFilterAction(0)
	UnawareSelectMKeepU  = C1G2TagInventoryStateUnawareFilterAction(1)
	UnawareKeepMClearU   = C1G2TagInventoryStateUnawareFilterAction(2)
	UnawareClearMKeepU   = C1G2TagInventoryStateUnawareFilterAction(3)
	UnawareKeepMSelectU  = C1G2TagInventoryStateUnawareFilterAction(4)
	UnawareClearMSelectU = C1G2TagInventoryStateUnawareFilterAction(5)
)

func (a C1G2TagInventoryStateUnawareFilterAction) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2UnawareFilterAction, func() {
		b.u8(uint8(a))
	})
}

func (a *C1G2TagInventoryStateUnawareFilterAction) decode(r *pReader, ph paramHeader) {
	*a = C1G2TagInventoryStateUnawareFilterAction(r.u8())
	r.endParam(ph)
}

// C1G2RFControl selects the RF mode (by capability table ModeID) and Tari.
type C1G2RFControl struct {
	RFModeID uint16
	Tari     uint16
}

func (rc C1G2RFControl) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2RFControl, func() {
		b.u16(rc.RFModeID)
		b.u16(rc.Tari)
	})
}

func (rc *C1G2RFControl) decode(r *pReader, ph paramHeader) {
	rc.RFModeID = r.u16()
	rc.Tari = r.u16()
	r.endParam(ph)
}

// C1G2SingulationControl tunes the singulation algorithm: which session
// flag to use, the expected population, and how long tags stay in view.
type C1G2SingulationControl struct {
	Session        uint8 // 2-bit field
	TagPopulation  uint16
	TagTransitTime Millisecs32
	InvAwareAction *C1G2TagInventoryStateAwareSingulationAction
}

func (sc C1G2SingulationControl) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2SingulationControl, func() {
		b.u8(sc.Session & 0x3 << 6)
		b.u16(sc.TagPopulation)
		b.u32(uint32(sc.TagTransitTime))
		if sc.InvAwareAction != nil {
			sc.InvAwareAction.encodeTo(b)
		}
	})
}

func (sc *C1G2SingulationControl) decode(r *pReader, ph paramHeader) {
	sc.Session = r.u8() >> 6
	sc.TagPopulation = r.u16()
	sc.TagTransitTime = Millisecs32(r.u32())
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ == ParamC1G2AwareSingulationAction {
			sc.InvAwareAction = &C1G2TagInventoryStateAwareSingulationAction{}
			sc.InvAwareAction.decode(r, sub)
		} else {
			r.skip(sub)
		}
	}
}

type SessionState uint8

const (
	SessionStateA = SessionState(0)
	SessionStateB = SessionState(1)
)

type SLState uint8

const (
	SLStateAsserted   = SLState(0)
	SLStateDeasserted = SLState(1)
)

// C1G2TagInventoryStateAwareSingulationAction targets Queries at tags
// whose session flag and SL flag match the given states.
type C1G2TagInventoryStateAwareSingulationAction struct {
	SessionState SessionState
	SLState      SLState
}

func (a C1G2TagInventoryStateAwareSingulationAction) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2AwareSingulationAction, func() {
		var v uint8
		if a.SessionState == SessionStateB {
			v |= 1 << 7
		}
		if a.SLState == SLStateDeasserted {
			v |= 1 << 6
		}
		b.u8(v)
	})
}

func (a *C1G2TagInventoryStateAwareSingulationAction) decode(r *pReader, ph paramHeader) {
	v := r.u8()
	a.SessionState = SessionState(v >> 7)
	a.SLState = SLState(v >> 6 & 1)
	r.endParam(ph)
}

// C1G2TagSpec is the tag pattern an AccessSpec matches against.
// A second TargetTag, when present, must also match (logical AND).
type C1G2TagSpec struct {
	TagPattern1 C1G2TargetTag
	TagPattern2 *C1G2TargetTag
}

func (ts C1G2TagSpec) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2TagSpec, func() {
		ts.TagPattern1.encodeTo(b)
		if ts.TagPattern2 != nil {
			ts.TagPattern2.encodeTo(b)
		}
	})
}

func (ts *C1G2TagSpec) decode(r *pReader, ph paramHeader) {
	first := true
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ != ParamC1G2TargetTag {
			r.skip(sub)
			continue
		}
		if first {
			ts.TagPattern1.decode(r, sub)
			first = false
		} else {
			ts.TagPattern2 = &C1G2TargetTag{}
			ts.TagPattern2.decode(r, sub)
		}
	}
}

// C1G2TargetTag matches tag memory against Mask/Data at a bit Pointer.
// Match inverts the sense: when false, tags that do NOT match are selected.
type C1G2TargetTag struct {
	MemoryBank uint8 // 2-bit field
	Match      bool
	Pointer    uint16
	MaskBits   uint16
	Mask       []byte
	DataBits   uint16
	Data       []byte
}

func (tt C1G2TargetTag) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2TargetTag, func() {
		v := tt.MemoryBank & 0x3 << 6
		if tt.Match {
			v |= 1 << 5
		}
		b.u8(v)
		b.u16(tt.Pointer)
		b.u16(tt.MaskBits)
		b.raw(tt.Mask)
		b.u16(tt.DataBits)
		b.raw(tt.Data)
	})
}

func (tt *C1G2TargetTag) decode(r *pReader, ph paramHeader) {
	v := r.u8()
	tt.MemoryBank = v >> 6
	tt.Match = v&(1<<5) != 0
	tt.Pointer = r.u16()
	tt.MaskBits = r.u16()
	tt.Mask = r.raw(bitsToBytes(tt.MaskBits))
	tt.DataBits = r.u16()
	tt.Data = r.raw(bitsToBytes(tt.DataBits))
	r.endParam(ph)
}

// OpSpec is a single C1G2 access operation within an AccessCommand.
// The Reader executes a command's OpSpecs in order on each matching tag.
type OpSpec interface {
	// ID returns the client-assigned OpSpecID linking results to operations.
	ID() uint16

	encodeTo(b *msgBuilder)
}

// C1G2Read reads WordCount 16-bit words from a memory bank.
// WordCount 0 means "to the end of the bank" on Readers that allow it.
type C1G2Read struct {
	OpSpecID       uint16
	AccessPassword uint32
	MemoryBank     uint8 // 2-bit field
	WordPointer    uint16
	WordCount      uint16
}

func (op C1G2Read) ID() uint16 { return op.OpSpecID }

func (op C1G2Read) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2Read, func() {
		b.u16(op.OpSpecID)
		b.u32(op.AccessPassword)
		b.u8(op.MemoryBank & 0x3 << 6)
		b.u16(op.WordPointer)
		b.u16(op.WordCount)
	})
}

func (op *C1G2Read) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.AccessPassword = r.u32()
	op.MemoryBank = r.u8() >> 6
	op.WordPointer = r.u16()
	op.WordCount = r.u16()
	r.endParam(ph)
}

// C1G2Write writes Data to a memory bank, one 16-bit word at a time.
type C1G2Write struct {
	OpSpecID       uint16
	AccessPassword uint32
	MemoryBank     uint8 // 2-bit field
	WordPointer    uint16
	Data           []uint16
}

func (op C1G2Write) ID() uint16 { return op.OpSpecID }

func (op C1G2Write) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2Write, func() {
		b.u16(op.OpSpecID)
		b.u32(op.AccessPassword)
		b.u8(op.MemoryBank & 0x3 << 6)
		b.u16(op.WordPointer)
		b.u16(uint16(len(op.Data)))
		for _, w := range op.Data {
			b.u16(w)
		}
	})
}

func (op *C1G2Write) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.AccessPassword = r.u32()
	op.MemoryBank = r.u8() >> 6
	op.WordPointer = r.u16()
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		op.Data = append(op.Data, r.u16())
	}
	r.endParam(ph)
}

// C1G2Kill permanently disables a tag using its (non-zero) kill password.
type C1G2Kill struct {
	OpSpecID     uint16
	KillPassword uint32
}

func (op C1G2Kill) ID() uint16 { return op.OpSpecID }

func (op C1G2Kill) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2Kill, func() {
		b.u16(op.OpSpecID)
		b.u32(op.KillPassword)
	})
}

func (op *C1G2Kill) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.KillPassword = r.u32()
	r.endParam(ph)
}

// C1G2Recommission partially disables a tag rather than killing it outright.
// The three flags select which recommissioning bits to assert.
type C1G2Recommission struct {
	OpSpecID     uint16
	KillPassword uint32
	SB3          bool
	SB2          bool
	LSB          bool
}

func (op C1G2Recommission) ID() uint16 { return op.OpSpecID }

func (op C1G2Recommission) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2Recommission, func() {
		b.u16(op.OpSpecID)
		b.u32(op.KillPassword)
		var v uint8
		if op.SB3 {
			v |= 1 << 2
		}
		if op.SB2 {
			v |= 1 << 1
		}
		if op.LSB {
			v |= 1
		}
		b.u8(v)
	})
}

func (op *C1G2Recommission) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.KillPassword = r.u32()
	v := r.u8()
	op.SB3 = v&(1<<2) != 0
	op.SB2 = v&(1<<1) != 0
	op.LSB = v&1 != 0
	r.endParam(ph)
}

type C1G2LockPrivilege uint8

const (
	LockPrivilegeReadWrite   = C1G2LockPrivilege(0)
	LockPrivilegePermalock   = C1G2LockPrivilege(1)
	LockPrivilegeUnlock      = C1G2LockPrivilege(2)
	LockPrivilegePermaunlock = C1G2LockPrivilege(3)
)

type C1G2LockDataField uint8

const (
	LockDataKillPassword   = C1G2LockDataField(0)
	LockDataAccessPassword = C1G2LockDataField(1)
	LockDataEPCMemory      = C1G2LockDataField(2)
	LockDataTIDMemory      = C1G2LockDataField(3)
	LockDataUserMemory     = C1G2LockDataField(4)
)

type C1G2LockPayload struct {
	Privilege C1G2LockPrivilege
	DataField C1G2LockDataField
}

func (lp C1G2LockPayload) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2LockPayload, func() {
		b.u8(uint8(lp.Privilege))
		b.u8(uint8(lp.DataField))
	})
}

func (lp *C1G2LockPayload) decode(r *pReader, ph paramHeader) {
	lp.Privilege = C1G2LockPrivilege(r.u8())
	lp.DataField = C1G2LockDataField(r.u8())
	r.endParam(ph)
}

// C1G2Lock applies one or more lock privileges to tag data fields.
type C1G2Lock struct {
	OpSpecID       uint16
	AccessPassword uint32
	Payloads       []C1G2LockPayload
}

func (op C1G2Lock) ID() uint16 { return op.OpSpecID }

func (op C1G2Lock) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2Lock, func() {
		b.u16(op.OpSpecID)
		b.u32(op.AccessPassword)
		for _, lp := range op.Payloads {
			lp.encodeTo(b)
		}
	})
}

func (op *C1G2Lock) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.AccessPassword = r.u32()
	for {
		sub, ok := r.nextParam(ph.end)
		if !ok {
			break
		}
		if sub.typ != ParamC1G2LockPayload {
			r.skip(sub)
			continue
		}
		var lp C1G2LockPayload
		lp.decode(r, sub)
		op.Payloads = append(op.Payloads, lp)
	}
}

// C1G2BlockErase erases WordCount words starting at WordPointer.
type C1G2BlockErase struct {
	OpSpecID       uint16
	AccessPassword uint32
	MemoryBank     uint8 // 2-bit field
	WordPointer    uint16
	WordCount      uint16
}

func (op C1G2BlockErase) ID() uint16 { return op.OpSpecID }

func (op C1G2BlockErase) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2BlockErase, func() {
		b.u16(op.OpSpecID)
		b.u32(op.AccessPassword)
		b.u8(op.MemoryBank & 0x3 << 6)
		b.u16(op.WordPointer)
		b.u16(op.WordCount)
	})
}

func (op *C1G2BlockErase) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.AccessPassword = r.u32()
	op.MemoryBank = r.u8() >> 6
	op.WordPointer = r.u16()
	op.WordCount = r.u16()
	r.endParam(ph)
}

// C1G2BlockWrite writes Data in a single BlockWrite command,
// for tags and Readers that support it.
type C1G2BlockWrite struct {
	OpSpecID       uint16
	AccessPassword uint32
	MemoryBank     uint8 // 2-bit field
	WordPointer    uint16
	Data           []uint16
}

func (op C1G2BlockWrite) ID() uint16 { return op.OpSpecID }

func (op C1G2BlockWrite) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2BlockWrite, func() {
		b.u16(op.OpSpecID)
		b.u32(op.AccessPassword)
		b.u8(op.MemoryBank & 0x3 << 6)
		b.u16(op.WordPointer)
		b.u16(uint16(len(op.Data)))
		for _, w := range op.Data {
			b.u16(w)
		}
	})
}

func (op *C1G2BlockWrite) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.AccessPassword = r.u32()
	op.MemoryBank = r.u8() >> 6
	op.WordPointer = r.u16()
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		op.Data = append(op.Data, r.u16())
	}
	r.endParam(ph)
}

// C1G2BlockPermalock permanently locks blocks selected by the mask words.
type C1G2BlockPermalock struct {
	OpSpecID       uint16
	AccessPassword uint32
	MemoryBank     uint8 // 2-bit field
	BlockPointer   uint16
	BlockMask      []uint16
}

func (op C1G2BlockPermalock) ID() uint16 { return op.OpSpecID }

func (op C1G2BlockPermalock) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2BlockPermalock, func() {
		b.u16(op.OpSpecID)
		b.u32(op.AccessPassword)
		b.u8(op.MemoryBank & 0x3 << 6)
		b.u16(op.BlockPointer)
		b.u16(uint16(len(op.BlockMask)))
		for _, w := range op.BlockMask {
			b.u16(w)
		}
	})
}

func (op *C1G2BlockPermalock) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.AccessPassword = r.u32()
	op.MemoryBank = r.u8() >> 6
	op.BlockPointer = r.u16()
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		op.BlockMask = append(op.BlockMask, r.u16())
	}
	r.endParam(ph)
}

// C1G2GetBlockPermalockStatus reads the permalock status of BlockRange
// blocks starting at BlockPointer.
type C1G2GetBlockPermalockStatus struct {
	OpSpecID       uint16
	AccessPassword uint32
	MemoryBank     uint8 // 2-bit field
	BlockPointer   uint16
	BlockRange     uint16
}

func (op C1G2GetBlockPermalockStatus) ID() uint16 { return op.OpSpecID }

func (op C1G2GetBlockPermalockStatus) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2GetBlockPermalockStatus, func() {
		b.u16(op.OpSpecID)
		b.u32(op.AccessPassword)
		b.u8(op.MemoryBank & 0x3 << 6)
		b.u16(op.BlockPointer)
		b.u16(op.BlockRange)
	})
}

func (op *C1G2GetBlockPermalockStatus) decode(r *pReader, ph paramHeader) {
	op.OpSpecID = r.u16()
	op.AccessPassword = r.u32()
	op.MemoryBank = r.u8() >> 6
	op.BlockPointer = r.u16()
	op.BlockRange = r.u16()
	r.endParam(ph)
}

// decodeOpSpec decodes a single access operation parameter, or nil if the
// type isn't one. Used when the Reader echoes AccessSpecs back to us.
func decodeOpSpec(r *pReader, ph paramHeader) (OpSpec, bool) {
	switch ph.typ {
	case ParamC1G2Read:
		op := &C1G2Read{}
		op.decode(r, ph)
		return op, true
	case ParamC1G2Write:
		op := &C1G2Write{}
		op.decode(r, ph)
		return op, true
	case ParamC1G2Kill:
		op := &C1G2Kill{}
		op.decode(r, ph)
		return op, true
	case ParamC1G2Recommission:
		op := &C1G2Recommission{}
		op.decode(r, ph)
		return op, true
	case ParamC1G2Lock:
		op := &C1G2Lock{}
		op.decode(r, ph)
		return op, true
	case ParamC1G2BlockErase:
		op := &C1G2BlockErase{}
		op.decode(r, ph)
		return op, true
	case ParamC1G2BlockWrite:
		op := &C1G2BlockWrite{}
		op.decode(r, ph)
		return op, true
	case ParamC1G2BlockPermalock:
		op := &C1G2BlockPermalock{}
		op.decode(r, ph)
		return op, true
	case ParamC1G2GetBlockPermalockStatus:
		op := &C1G2GetBlockPermalockStatus{}
		op.decode(r, ph)
		return op, true
	}
	return nil, false
}

// Access operation results. Each carries a per-operation result code
// where 0 always means success, plus the OpSpecID of the operation
// that produced it.

type C1G2ReadOpSpecResultType uint8

const (
	C1G2ReadSuccess                = C1G2ReadOpSpecResultType(0)
	C1G2ReadNonSpecificTagError    = C1G2ReadOpSpecResultType(1)
	C1G2ReadNoResponseFromTag      = C1G2ReadOpSpecResultType(2)
	C1G2ReadNonSpecificReaderError = C1G2ReadOpSpecResultType(3)
)

type C1G2ReadOpSpecResult struct {
	C1G2ReadOpSpecResultType C1G2ReadOpSpecResultType
	OpSpecID                 uint16
	Data                     []uint16
}

func (res C1G2ReadOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2ReadOpSpecResult, func() {
		b.u8(uint8(res.C1G2ReadOpSpecResultType))
		b.u16(res.OpSpecID)
		b.u16(uint16(len(res.Data)))
		for _, w := range res.Data {
			b.u16(w)
		}
	})
}

func (res *C1G2ReadOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2ReadOpSpecResultType = C1G2ReadOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		res.Data = append(res.Data, r.u16())
	}
	r.endParam(ph)
}

type C1G2WriteOpSpecResultType uint8

const (
	C1G2WriteSuccess                = C1G2WriteOpSpecResultType(0)
	C1G2WriteTagMemoryOverrun       = C1G2WriteOpSpecResultType(1)
	C1G2WriteTagMemoryLocked        = C1G2WriteOpSpecResultType(2)
	C1G2WriteInsufficientPower      = C1G2WriteOpSpecResultType(3)
	C1G2WriteNonSpecificTagError    = C1G2WriteOpSpecResultType(4)
	C1G2WriteNoResponseFromTag      = C1G2WriteOpSpecResultType(5)
	C1G2WriteNonSpecificReaderError = C1G2WriteOpSpecResultType(6)
)

type C1G2WriteOpSpecResult struct {
	C1G2WriteOpSpecResultType C1G2WriteOpSpecResultType
	OpSpecID                  uint16
	NumWordsWritten           uint16
}

func (res C1G2WriteOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2WriteOpSpecResult, func() {
		b.u8(uint8(res.C1G2WriteOpSpecResultType))
		b.u16(res.OpSpecID)
		b.u16(res.NumWordsWritten)
	})
}

func (res *C1G2WriteOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2WriteOpSpecResultType = C1G2WriteOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	res.NumWordsWritten = r.u16()
	r.endParam(ph)
}

type C1G2KillOpSpecResultType uint8

const (
	C1G2KillSuccess                = C1G2KillOpSpecResultType(0)
	C1G2KillZeroKillPasswordError  = C1G2KillOpSpecResultType(1)
	C1G2KillInsufficientPower      = C1G2KillOpSpecResultType(2)
	C1G2KillNonSpecificTagError    = C1G2KillOpSpecResultType(3)
	C1G2KillNoResponseFromTag      = C1G2KillOpSpecResultType(4)
	C1G2KillNonSpecificReaderError = C1G2KillOpSpecResultType(5)
)

type C1G2KillOpSpecResult struct {
	C1G2KillOpSpecResultType C1G2KillOpSpecResultType
	OpSpecID                 uint16
}

func (res C1G2KillOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2KillOpSpecResult, func() {
		b.u8(uint8(res.C1G2KillOpSpecResultType))
		b.u16(res.OpSpecID)
	})
}

func (res *C1G2KillOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2KillOpSpecResultType = C1G2KillOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	r.endParam(ph)
}

type C1G2RecommissionOpSpecResultType uint8

type C1G2RecommissionOpSpecResult struct {
	C1G2RecommissionOpSpecResultType C1G2RecommissionOpSpecResultType
	OpSpecID                         uint16
}

func (res C1G2RecommissionOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2RecommissionOpSpecResult, func() {
		b.u8(uint8(res.C1G2RecommissionOpSpecResultType))
		b.u16(res.OpSpecID)
	})
}

func (res *C1G2RecommissionOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2RecommissionOpSpecResultType = C1G2RecommissionOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	r.endParam(ph)
}

type C1G2LockOpSpecResultType uint8

const (
	C1G2LockSuccess                = C1G2LockOpSpecResultType(0)
	C1G2LockInsufficientPower      = C1G2LockOpSpecResultType(1)
	C1G2LockNonSpecificTagError    = C1G2LockOpSpecResultType(2)
	C1G2LockNoResponseFromTag      = C1G2LockOpSpecResultType(3)
	C1G2LockNonSpecificReaderError = C1G2LockOpSpecResultType(4)
)

type C1G2LockOpSpecResult struct {
	C1G2LockOpSpecResultType C1G2LockOpSpecResultType
	OpSpecID                 uint16
}

func (res C1G2LockOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2LockOpSpecResult, func() {
		b.u8(uint8(res.C1G2LockOpSpecResultType))
		b.u16(res.OpSpecID)
	})
}

func (res *C1G2LockOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2LockOpSpecResultType = C1G2LockOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	r.endParam(ph)
}

type C1G2BlockEraseOpSpecResultType uint8

type C1G2BlockEraseOpSpecResult struct {
	C1G2BlockEraseOpSpecResultType C1G2BlockEraseOpSpecResultType
	OpSpecID                       uint16
}

func (res C1G2BlockEraseOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2BlockEraseOpSpecResult, func() {
		b.u8(uint8(res.C1G2BlockEraseOpSpecResultType))
		b.u16(res.OpSpecID)
	})
}

func (res *C1G2BlockEraseOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2BlockEraseOpSpecResultType = C1G2BlockEraseOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	r.endParam(ph)
}

type C1G2BlockWriteOpSpecResultType uint8

type C1G2BlockWriteOpSpecResult struct {
	C1G2BlockWriteOpSpecResultType C1G2BlockWriteOpSpecResultType
	OpSpecID                       uint16
	NumWordsWritten                uint16
}

func (res C1G2BlockWriteOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2BlockWriteOpSpecResult, func() {
		b.u8(uint8(res.C1G2BlockWriteOpSpecResultType))
		b.u16(res.OpSpecID)
		b.u16(res.NumWordsWritten)
	})
}

func (res *C1G2BlockWriteOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2BlockWriteOpSpecResultType = C1G2BlockWriteOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	res.NumWordsWritten = r.u16()
	r.endParam(ph)
}

type C1G2BlockPermalockOpSpecResultType uint8

type C1G2BlockPermalockOpSpecResult struct {
	C1G2BlockPermalockOpSpecResultType C1G2BlockPermalockOpSpecResultType
	OpSpecID                           uint16
}

func (res C1G2BlockPermalockOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2BlockPermalockOpSpecResult, func() {
		b.u8(uint8(res.C1G2BlockPermalockOpSpecResultType))
		b.u16(res.OpSpecID)
	})
}

func (res *C1G2BlockPermalockOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2BlockPermalockOpSpecResultType = C1G2BlockPermalockOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	r.endParam(ph)
}

type C1G2GetBlockPermalockStatusOpSpecResultType uint8

type C1G2GetBlockPermalockStatusOpSpecResult struct {
	C1G2GetBlockPermalockStatusOpSpecResultType C1G2GetBlockPermalockStatusOpSpecResultType
	OpSpecID                                    uint16
	PermalockStatus                             []uint16
}

func (res C1G2GetBlockPermalockStatusOpSpecResult) encodeTo(b *msgBuilder) {
	b.tlv(ParamC1G2GetBlockPermalockStatusOpSpecResult, func() {
		b.u8(uint8(res.C1G2GetBlockPermalockStatusOpSpecResultType))
		b.u16(res.OpSpecID)
		b.u16(uint16(len(res.PermalockStatus)))
		for _, w := range res.PermalockStatus {
			b.u16(w)
		}
	})
}

func (res *C1G2GetBlockPermalockStatusOpSpecResult) decode(r *pReader, ph paramHeader) {
	res.C1G2GetBlockPermalockStatusOpSpecResultType = C1G2GetBlockPermalockStatusOpSpecResultType(r.u8())
	res.OpSpecID = r.u16()
	n := int(r.u16())
	for i := 0; i < n && r.err == nil; i++ {
		res.PermalockStatus = append(res.PermalockStatus, r.u16())
	}
	r.endParam(ph)
}
