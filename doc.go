/*
Package ioregistry provides a unified I/O format registry: a lookup and
dispatch layer that gives data-container types pluggable read/write support
for many named formats, selected either explicitly or by inspecting the
input.

The registry stores three kinds of entries, each keyed by a (format, class)
pair: identifiers (predicates that auto-detect a format from a path or open
stream), readers and writers. It performs no parsing or serialization itself;
format packages register their codecs, typically from init functions, and the
registry routes each read/write call to the right one.

Registry Variants:

Capability is a static type distinction. InputRegistry supports
identification and reading, OutputRegistry identification and writing, and
IORegistry all three; the interfaces Registry, ReadRegistry, WriteRegistry
and ReadWriteRegistry express the same capabilities generically.

Data Classes:

Container types are described by DataClass descriptors, which form a
single-parent hierarchy. Handler lookup walks a class's ancestry nearest
ancestor first, so a handler registered for a more specific class always
shadows one registered for a more general one:

	base := ioregistry.NewDataClass("Dataset", nil)
	sub := ioregistry.NewDataClass("TimeSeries", base)

	reg := ioregistry.NewIORegistry()
	reg.RegisterReader("yaml", base, readYAML)
	r, _ := reg.GetReader("yaml", sub) // resolves readYAML via the ancestry

Dispatch:

Read and Write accept an optional explicit format. Without one, every
registered identifier for the class (and its ancestry) is consulted; when
several formats claim the input, the one whose handler was registered with
the highest priority wins, and a tie among the top-ranked candidates is an
ambiguity error. No identified format at all is an error asking the caller
for an explicit format.

	data, err := reg.Read(dataset.Class, []any{"points.yaml"})

Default Registry:

A process-wide default registry backs the package-level functions; each takes
an explicit registry as its first argument, with nil meaning the default.
Format packages use this to self-register:

	func init() {
	    ioregistry.RegisterIdentifier(nil, "yaml", dataset.Class, identify)
	    ioregistry.RegisterReader(nil, "yaml", dataset.Class, read)
	    ioregistry.RegisterWriter(nil, "yaml", dataset.Class, write)
	}

Documentation Upkeep:

Every registration change regenerates a per-class table of available formats
(exposed through DataClass.ReadDoc and DataClass.WriteDoc); DelayDocUpdates
batches the regeneration for a class to exactly one pass over a scope of
mutations. The rendering is an observer (DocUpdater) and can be replaced or
disabled per registry.

Registries serialize their individual operations internally, but callers that
need invariants spanning several calls must serialize externally.
*/
package ioregistry
