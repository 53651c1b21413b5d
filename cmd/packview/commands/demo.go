package commands

import (
	"fmt"
	"os"

	"github.com/arloliu/packbuf"
	"github.com/arloliu/packbuf/buffer"
	"github.com/arloliu/packbuf/format"
	"github.com/arloliu/packbuf/schema"
	"github.com/arloliu/packbuf/snapshot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultDemoRecords = 64

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo <snapshot-file>",
		Short: "Write a generated demo snapshot",
		Long: `Write a snapshot of a generated line-strip buffer. The compression and
record count can also be set with PACKVIEW_COMPRESSION and PACKVIEW_RECORDS or
in the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: runDemo,
	}
	cmd.Flags().String("compression", "zstd", "payload compression: none, zstd, s2 or lz4")
	cmd.Flags().Int("records", defaultDemoRecords, "number of records to generate")
	_ = viper.BindPFlag("compression", cmd.Flags().Lookup("compression"))
	_ = viper.BindPFlag("records", cmd.Flags().Lookup("records"))

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	compression, err := parseCompression(viper.GetString("compression"))
	if err != nil {
		return err
	}

	records := viper.GetInt("records")
	if records < 0 || records > 65535 {
		return fmt.Errorf("invalid record count: %d", records)
	}

	buf, err := demoBuffer(records)
	if err != nil {
		return err
	}
	defer buf.Release()

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	n, err := snapshot.EncodeTo(f, buf, snapshot.WithCompression(compression))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records (%d bytes, %s) to %s\n",
		buf.Len(), n, compression, args[0])

	return nil
}

func parseCompression(name string) (format.CompressionType, error) {
	switch name {
	case "none", "":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", name)
	}
}

// demoBuffer builds a line strip of n vertices shaped like a sawtooth.
func demoBuffer(n int) (*buffer.Buffer, error) {
	buf, err := packbuf.NewVertexBuffer(
		schema.Attr("pos", schema.Components(2), schema.Type(format.Short)),
		schema.Attr("extrude", schema.Components(2), schema.Type(format.Byte)),
		schema.Attr("linesofar", schema.Type(format.UnsignedShort)),
		schema.Attr("color", schema.Components(4)),
	)
	if err != nil {
		return nil, err
	}

	for i := range int64(n) {
		_, err := buf.Append(buffer.NewRecord(
			buffer.Vector("pos", (i*32)%32768, (i%8)*16),
			buffer.Vector("extrude", 63, -63),
			buffer.Scalar("linesofar", i),
			buffer.Vector("color", i%256, 128, 255-i%256, 255),
		))
		if err != nil {
			buf.Release()
			return nil, err
		}
	}

	return buf, nil
}
