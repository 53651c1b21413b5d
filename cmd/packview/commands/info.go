package commands

import (
	"fmt"
	"os"

	"github.com/arloliu/packbuf/snapshot"
	"github.com/spf13/cobra"
)

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <snapshot-file>",
		Short: "Print the header and layout of a snapshot",
		Long: `Print the snapshot header and attribute layout without starting the
interactive inspector. With --verify the payload is decoded and its checksum
checked as well.`,
		Args: cobra.ExactArgs(1),
		RunE: runInfo,
	}
	cmd.Flags().Bool("verify", false, "decode the payload and verify its checksum")

	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	h, s, err := snapshot.DecodeSchema(data)
	if err != nil {
		return err
	}

	order := "little-endian"
	if h.IsBigEndian() {
		order = "big-endian"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:        %s (%d bytes)\n", args[0], len(data))
	fmt.Fprintf(out, "Records:     %d\n", h.RecordCount)
	fmt.Fprintf(out, "Stride:      %d\n", h.Stride)
	fmt.Fprintf(out, "Payload:     %d bytes, %s, %s\n", h.PayloadLength, h.Compression, order)
	fmt.Fprintf(out, "Alignment:   record %d, size %d\n", h.RecordAlignment, h.SizeAlignment)
	fmt.Fprintf(out, "Fingerprint: %016x\n", h.Fingerprint)
	fmt.Fprintf(out, "Checksum:    %08x\n", h.Checksum)
	fmt.Fprintln(out, "Attributes:")
	for _, a := range s.Attributes() {
		fmt.Fprintf(out, "  %-16s %s x%d  offset %d  size %d\n", a.Name, a.Type, a.Components, a.Offset, a.Size)
	}

	verify, _ := cmd.Flags().GetBool("verify")
	if !verify {
		return nil
	}

	buf, err := snapshot.Decode(data)
	if err != nil {
		return err
	}
	defer buf.Release()
	fmt.Fprintf(out, "Verified:    %d records\n", buf.Len())

	return nil
}
