package timeline

import "liftcoach/pkg/protocol"

// LogConfirmation is the compound unit rendered when a success status is
// immediately followed by an undo block.
type LogConfirmation struct {
	Status protocol.StatusBlock
	Undo   protocol.UndoBlock
}

// Unit is one presentation unit: either a single block or a merged log
// confirmation.
type Unit struct {
	Block        protocol.Block
	Confirmation *LogConfirmation
}

// MergeBlocks collapses adjacent success-status + undo pairs into one unit
// and passes everything else through in order. Single forward scan, one
// element of lookahead, no reordering.
func MergeBlocks(blocks []protocol.Block) []Unit {
	units := make([]Unit, 0, len(blocks))
	for i := 0; i < len(blocks); i++ {
		status, ok := blocks[i].(protocol.StatusBlock)
		if ok && status.Tone == protocol.ToneSuccess && i+1 < len(blocks) {
			if undo, ok := blocks[i+1].(protocol.UndoBlock); ok {
				units = append(units, Unit{Confirmation: &LogConfirmation{Status: status, Undo: undo}})
				i++
				continue
			}
		}
		units = append(units, Unit{Block: blocks[i]})
	}
	return units
}
