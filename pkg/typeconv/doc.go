/*
Package typeconv converts values between types using converters registered
at runtime.

# Overview

A registry (package registry) holds conversion records (package record).
A Converter resolves the single best record for a requested conversion
(package resolve) and invokes it, applying the configured fallback policy.

	reg := registry.New()
	_ = reg.Add(ctx, record.New(strconv.Atoi))

	conv := typeconv.New(reg)
	n, err := typeconv.CastTo[int](ctx, conv, "42") // 42, nil

# Operations

The Converter offers four shapes of the same conversion:

	CastTo       strict: errors on not-found, ambiguity or converter failure
	ConvertTo    safe: returns the caller's default instead of failing
	TryConvert   reports success as a bool
	CanConvert   pure query, invokes nothing

Under config.PolicyDefault CastTo returns the zero value instead of not-found
and converter-failure errors. Ambiguity is an error in every strict variant.

Converting a value to its own type is the identity, so chained casts are
idempotent.

# Resolution

Records are matched exactly first, then by assignability, so a converter
producing a concrete type serves requests for an interface it implements.
Within one stage a matching argument type beats an argument-less record and
a matching alias beats a nameless one. See package resolve for the full
order.

# Errors

Failures are typed and wrap sentinels:

	var nf *typeconv.ConversionNotFoundError
	if errors.As(err, &nf) {
	    log.Printf("missing converter %s -> %s", nf.From, nf.To)
	}

	switch typeconv.Categorize(err) {
	case typeconv.CategoryAmbiguous:
	    // configuration problem
	}

# Default Instance

The package keeps no global state. Hosts construct their process-lifetime
Converter once at startup, usually with NewDefault, and pass it to the code
that needs it.
*/
package typeconv
