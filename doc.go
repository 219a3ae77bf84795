/*
Command cometeph computes two-body ephemerides of comets.

Contents

  Program overview
  Installing
  Command line usage
  Configuring file locations
  File formats
  Algorithm outline


Program overview

Input is a job file naming a date range and an observing site, and a file
of comet orbital elements in the MPC one-line format.  Output is, for each
comet, a short summary of the orbit followed by an ephemeris table.

The summary shows perihelion distance q, eccentricity e, the orbit regime
(elliptical, parabolic or hyperbolic), the time of perihelion T and the
angular elements.  It then shows the reciprocal semi-major axis 1/a, and
where they exist the semi-major axis a and the period P in years.  Orbits
with eccentricity between .98 and 1.02 are flagged "near parabolic."  The
flag is informational; near parabolic orbits are solved as the ellipses or
hyperbolas they are.

Each line of the table gives date and time (UT), right ascension and
declination referred to the J2000 mean equator, distance Δ from the
observer, distance r from the sun, solar elongation, total magnitude and
heliocentric speed in km/s.  Magnitude is blank if the elements carry no
magnitude parameters.

Installing

You need Go 1.21 or later.  Type

    go install github.com/soniakeys/cometeph@latest


Command line usage

Invoking the program without command line arguments (or with invalid
arguments) shows this usage prompt.

  Usage: cometeph [options] <jobfile>   compute ephemerides for a job
         cometeph -h                    display help and quick reference
         cometeph -v                    display version and copyright

  Options:
       -e <elements-file>
       -o <obscode-file>
       -p <path>


Configuring file locations

Besides the job file, cometeph reads the comet elements file, and for
sites other than the geocenter, the MPC observatory code file.

	File           Command line option   Job file key
	CometEls.txt   -e                    Elements
	obscode.dat    -o

Both are looked for in the directory given with -p, by default the current
directory.  A path given with -e or -o is used as is, not joined with the -p
path.  If either file is missing, cometeph downloads a fresh copy from the
Minor Planet Center.


File formats

The job file is TOML.  Keys are

	Desig        packed designation or start of name, empty for all comets
	Start        first date, a TOML datetime such as 2021-12-10T00:00:00Z
	End          last date, defaults to Start
	Step         days between lines, a float, defaults to 1.0
	Site         MPC observatory code, defaults to 500, the geocenter
	Elements     elements file name
	NoHeadings   true suppresses the heading lines

The elements file is the MPC CometEls.txt format, documented at
https://www.minorplanetcenter.net/iau/info/CometOrbitFormat.html.  Lines that
do not parse are ignored.  An eccentricity of exactly 1 marks a parabolic
orbit.


Algorithm outline

For each date, mean anomaly of elliptical and hyperbolic orbits is
computed from the time since perihelion and Kepler's equation is solved by
Newton iteration.  Eccentricities below .3 use a closed form starting value
with a single higher order correction.  Parabolic orbits use the closed form
solution of Barker's equation.  True anomaly and distance give a position in
the orbital plane, rotated to ecliptic J2000 coordinates with the Gaussian
vectors P and Q.

The observer position comes from a low precision solar ephemeris plus the
site offset from the observatory parallax constants.  Light time is
iterated to convergence.  Planetary perturbations, aberration, nutation and
nongravitational forces are ignored.

Comets are processed concurrently, one per available CPU, with output kept
in input order.

-------------
Public domain.
*/
package main
