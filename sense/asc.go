package sense

type ascPair struct {
	asc  byte
	ascq byte
}

var ascDescriptions = map[ascPair]string{
	{0x00, 0x00}: "NO ADDITIONAL SENSE INFORMATION",
	{0x00, 0x01}: "FILEMARK DETECTED",
	{0x00, 0x02}: "END-OF-PARTITION/MEDIUM DETECTED",
	{0x00, 0x04}: "BEGINNING-OF-PARTITION/MEDIUM DETECTED",
	{0x00, 0x05}: "END-OF-DATA DETECTED",
	{0x00, 0x11}: "AUDIO PLAY OPERATION IN PROGRESS",
	{0x02, 0x00}: "NO SEEK COMPLETE",
	{0x04, 0x00}: "LOGICAL UNIT NOT READY, CAUSE NOT REPORTABLE",
	{0x04, 0x01}: "LOGICAL UNIT IS IN PROCESS OF BECOMING READY",
	{0x04, 0x02}: "LOGICAL UNIT NOT READY, INITIALIZING COMMAND REQUIRED",
	{0x04, 0x03}: "LOGICAL UNIT NOT READY, MANUAL INTERVENTION REQUIRED",
	{0x04, 0x04}: "LOGICAL UNIT NOT READY, FORMAT IN PROGRESS",
	{0x08, 0x00}: "LOGICAL UNIT COMMUNICATION FAILURE",
	{0x08, 0x01}: "LOGICAL UNIT COMMUNICATION TIME-OUT",
	{0x0C, 0x00}: "WRITE ERROR",
	{0x11, 0x00}: "UNRECOVERED READ ERROR",
	{0x11, 0x05}: "L-EC UNCORRECTABLE ERROR",
	{0x11, 0x06}: "CIRC UNRECOVERED ERROR",
	{0x14, 0x00}: "RECORDED ENTITY NOT FOUND",
	{0x15, 0x00}: "RANDOM POSITIONING ERROR",
	{0x1A, 0x00}: "PARAMETER LIST LENGTH ERROR",
	{0x20, 0x00}: "INVALID COMMAND OPERATION CODE",
	{0x21, 0x00}: "LOGICAL BLOCK ADDRESS OUT OF RANGE",
	{0x24, 0x00}: "INVALID FIELD IN CDB",
	{0x25, 0x00}: "LOGICAL UNIT NOT SUPPORTED",
	{0x26, 0x00}: "INVALID FIELD IN PARAMETER LIST",
	{0x27, 0x00}: "WRITE PROTECTED",
	{0x28, 0x00}: "NOT READY TO READY CHANGE, MEDIUM MAY HAVE CHANGED",
	{0x29, 0x00}: "POWER ON, RESET, OR BUS DEVICE RESET OCCURRED",
	{0x2A, 0x01}: "MODE PARAMETERS CHANGED",
	{0x30, 0x00}: "INCOMPATIBLE MEDIUM INSTALLED",
	{0x30, 0x02}: "CANNOT READ MEDIUM - INCOMPATIBLE FORMAT",
	{0x3A, 0x00}: "MEDIUM NOT PRESENT",
	{0x3A, 0x01}: "MEDIUM NOT PRESENT - TRAY CLOSED",
	{0x3A, 0x02}: "MEDIUM NOT PRESENT - TRAY OPEN",
	{0x3B, 0x00}: "SEQUENTIAL POSITIONING ERROR",
	{0x3D, 0x00}: "INVALID BITS IN IDENTIFY MESSAGE",
	{0x44, 0x00}: "INTERNAL TARGET FAILURE",
	{0x47, 0x00}: "SCSI PARITY ERROR",
	{0x4E, 0x00}: "OVERLAPPED COMMANDS ATTEMPTED",
	{0x53, 0x02}: "MEDIUM REMOVAL PREVENTED",
	{0x57, 0x00}: "UNABLE TO RECOVER TABLE-OF-CONTENTS",
	{0x5D, 0x00}: "FAILURE PREDICTION THRESHOLD EXCEEDED",
	{0x63, 0x00}: "END OF USER AREA ENCOUNTERED ON THIS TRACK",
	{0x64, 0x00}: "ILLEGAL MODE FOR THIS TRACK",
	{0x6F, 0x00}: "COPY PROTECTION KEY EXCHANGE FAILURE - AUTHENTICATION FAILURE",
	{0x6F, 0x01}: "COPY PROTECTION KEY EXCHANGE FAILURE - KEY NOT PRESENT",
	{0x6F, 0x02}: "COPY PROTECTION KEY EXCHANGE FAILURE - KEY NOT ESTABLISHED",
}

// Describe returns the standard text for an additional sense code pair, or
// "" when the pair is not known.
func Describe(asc byte, ascq byte) string {
	return ascDescriptions[ascPair{asc, ascq}]
}
