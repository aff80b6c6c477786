/*
Package iteratable implements iteratable container data structures.

Set is a special purpose set type, suitable mainly for implementing algorithms
around scanners, parsers, etc. These kinds of algorithms are often more straightforward
to describe as set constructions and operations.

A set remembers the order of insertion, and iteration with IterateOnce/Next
visits elements added while iterating. This makes a Set usable as a worklist:

    S := iteratable.NewSet(0)
    S.Add(seed)
    S.IterateOnce()
    for S.Next() {
        x := S.Item()
        S.Add(successorsOf(x)...)   // will be visited later, at most once
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
