package dac

import "fmt"

// CmdTag identifies a secure-binary (SB3.1) command.
type CmdTag uint8

const (
	CmdNone            CmdTag = 0x00
	CmdErase           CmdTag = 0x01
	CmdLoad            CmdTag = 0x02
	CmdExecute         CmdTag = 0x03
	CmdCall            CmdTag = 0x04
	CmdProgramFuses    CmdTag = 0x05
	CmdProgramIFR      CmdTag = 0x06
	CmdLoadCMAC        CmdTag = 0x07
	CmdCopy            CmdTag = 0x08
	CmdLoadHashLocking CmdTag = 0x09
	CmdLoadKeyBlob     CmdTag = 0x0A
	CmdConfigureMemory CmdTag = 0x0B
	CmdFillMemory      CmdTag = 0x0C
	CmdFwVersionCheck  CmdTag = 0x0D
)

var cmdTagNames = map[CmdTag]string{
	CmdNone:            "NONE",
	CmdErase:           "ERASE",
	CmdLoad:            "LOAD",
	CmdExecute:         "EXECUTE",
	CmdCall:            "CALL",
	CmdProgramFuses:    "PROGRAM_FUSES",
	CmdProgramIFR:      "PROGRAM_IFR",
	CmdLoadCMAC:        "LOAD_CMAC",
	CmdCopy:            "COPY",
	CmdLoadHashLocking: "LOAD_HASH_LOCKING",
	CmdLoadKeyBlob:     "LOAD_KEY_BLOB",
	CmdConfigureMemory: "CONFIGURE_MEMORY",
	CmdFillMemory:      "FILL_MEMORY",
	CmdFwVersionCheck:  "FW_VERSION_CHECK",
}

// String returns the canonical command name, or a hex rendering for
// unknown tags.
func (t CmdTag) String() string {
	if name, ok := cmdTagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CmdTag(0x%02X)", uint8(t))
}

// CmdTagFromName resolves a canonical command name back to its tag.
func CmdTagFromName(name string) (CmdTag, error) {
	for tag, n := range cmdTagNames {
		if n == name {
			return tag, nil
		}
	}
	return CmdNone, fmt.Errorf("dac: unknown command tag name %q", name)
}
